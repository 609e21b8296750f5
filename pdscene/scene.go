// Package pdscene composes a whole diagram: it dispatches every element to its
// renderer, fits the viewport around the content and isolates failures so that
// one broken element never blanks the rest of the diagram.
package pdscene

import (
	"fmt"

	"github.com/coachboard/playdiagram/lib/color"
	"github.com/coachboard/playdiagram/pdcap"
	"github.com/coachboard/playdiagram/pdpath"
	"github.com/coachboard/playdiagram/pdshape"
	"github.com/coachboard/playdiagram/pdtarget"
)

// RenderScene renders elements in order, one top-level node per rendered element.
// Elements that fail validation or rendering are listed in Skipped instead.
func RenderScene(elements []*pdtarget.Element, opts *pdtarget.RenderOptions) *pdtarget.RenderTree {
	s := opts.Style()
	tree := &pdtarget.RenderTree{
		Style:    s,
		Viewport: Viewport(elements, s),
		Nodes:    make([]*pdtarget.Node, 0, len(elements)),
	}

	for i, el := range elements {
		n, err := RenderElement(el, s)
		if err != nil {
			skipped := pdtarget.SkippedElement{
				Index:  i,
				Reason: err.Error(),
			}
			if el != nil {
				skipped.ID = el.ID
			}
			tree.Skipped = append(tree.Skipped, skipped)
			continue
		}
		tree.Nodes = append(tree.Nodes, n)
	}
	return tree
}

// RenderElement renders a single element. It never panics; a failure inside a
// renderer is returned as an error.
func RenderElement(el *pdtarget.Element, s *pdtarget.Style) (n *pdtarget.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			n = nil
			err = fmt.Errorf("render element: %v", r)
		}
	}()

	if err := el.Validate(); err != nil {
		return nil, err
	}

	switch el.Type {
	case pdtarget.ElementPlayer:
		n = pdshape.BuildPlayer(el, s)
	case pdtarget.ElementShape:
		if glyph := pdshape.BuildShape(el.Anchor(), el.ShapeType, s.Color(el), el.Text, s); glyph != nil {
			n = pdtarget.NewGroup(el.ID, glyph)
		}
	case pdtarget.ElementPoly:
		n = renderPoly(el, s)
	case pdtarget.ElementText:
		n = pdshape.BuildText(el, s)
	}
	if n == nil {
		return nil, fmt.Errorf("%s element produced nothing to draw", el.Type)
	}
	return n, nil
}

func renderPoly(el *pdtarget.Element, s *pdtarget.Style) *pdtarget.Node {
	sw := s.StrokeWidth(el)
	c := s.Color(el)
	endType := el.EffectiveEndType()

	g := pdtarget.NewGroup(el.ID)
	for _, pd := range pdpath.BuildElementPath(el.Points, el.SegmentStyles, el.Style, endType, sw, s) {
		g.Children = append(g.Children, &pdtarget.Node{
			Kind:          pdtarget.NodePath,
			Path:          pd,
			Fill:          color.None,
			Stroke:        c,
			StrokeWidth:   sw,
			StrokeLinecap: pdtarget.LinecapRound,
		})
	}
	// drawn last so the cap sits on top of the shortened stroke
	if endCap := pdcap.BuildEndCap(el.Points, endType, c, sw, s); endCap != nil {
		g.Children = append(g.Children, endCap)
	}
	return g
}
