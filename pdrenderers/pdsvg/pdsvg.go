// pdsvg implements an SVG renderer for play diagrams.
// The input is pdscene's RenderTree.
package pdsvg

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/coachboard/playdiagram/lib/color"
	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/lib/svg"
	"github.com/coachboard/playdiagram/pdtarget"
)

const (
	// vertical shift that centers a line of text on its anchor
	textBaselineShift = "0.35em"
	// spacing between lines of multi-line labels, as a multiple of the font size
	lineHeight = 1.2
)

type RenderOpts struct {
	// Background fills the viewport before any element is drawn. It defaults to
	// white; color.None leaves the diagram transparent.
	Background string
	// BackgroundHref is an image stretched over the whole canvas, under the elements.
	// It is drawn instead of Background. Pair it with a fixed viewport so the
	// image stays aligned.
	BackgroundHref string
	// NoXMLTag omits the XML declaration, for inlining into HTML.
	NoXMLTag bool
}

// Render serializes tree as a standalone SVG document.
func Render(tree *pdtarget.RenderTree, opts *RenderOpts) ([]byte, error) {
	if tree == nil || tree.Style == nil {
		return nil, errors.New("render tree has no style")
	}
	if opts == nil {
		opts = &RenderOpts{}
	}
	vp := tree.Viewport
	if vp == nil {
		vp = tree.Style.Canvas
	}

	buf := &bytes.Buffer{}
	if !opts.NoXMLTag {
		buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	}
	root := newElement("svg")
	root.Attributes = `xmlns="http://www.w3.org/2000/svg" preserveAspectRatio="xMidYMid meet"`
	root.ViewBox = vp.ViewBox()
	root.Width = vp.Width
	root.Height = vp.Height

	var body strings.Builder
	body.WriteString(background(vp, tree.Style.Canvas, opts))
	for _, n := range tree.Nodes {
		s, err := renderNode(n, tree.Style)
		if err != nil {
			return nil, err
		}
		body.WriteString(s)
	}
	root.Content = body.String()
	if root.Content == "" {
		// keep the root as an open/close pair
		root.Content = " "
	}
	buf.WriteString(root.render())
	return buf.Bytes(), nil
}

func background(vp, canvas *geo.Box, opts *RenderOpts) string {
	if opts.BackgroundHref != "" {
		img := newElement("image")
		img.Href = opts.BackgroundHref
		img.X = canvas.TopLeft.X
		img.Y = canvas.TopLeft.Y
		img.Width = canvas.Width
		img.Height = canvas.Height
		img.Attributes = `preserveAspectRatio="none"`
		return img.render()
	}
	if opts.Background == color.None {
		return ""
	}
	rect := newElement("rect")
	rect.X = vp.TopLeft.X
	rect.Y = vp.TopLeft.Y
	rect.Width = vp.Width
	rect.Height = vp.Height
	rect.Fill = color.Or(opts.Background, color.White)
	return rect.render()
}

func renderNode(n *pdtarget.Node, st *pdtarget.Style) (string, error) {
	if n == nil {
		return "", nil
	}
	var el *element
	switch n.Kind {
	case pdtarget.NodeGroup:
		el = newElement("g")
		el.DataID = string(n.ID)
		var children strings.Builder
		for _, c := range n.Children {
			s, err := renderNode(c, st)
			if err != nil {
				return "", err
			}
			children.WriteString(s)
		}
		el.Content = children.String()
	case pdtarget.NodePath:
		if n.Path == nil {
			return "", errors.New("path node without a path")
		}
		el = newElement("path")
		el.D = n.Path.Data()
		if n.Path.Style == pdtarget.LineDashed {
			el.StrokeDasharray = st.DashArray
		}
	case pdtarget.NodePolygon:
		el = newElement("polygon")
		el.Points = svg.Points(n.Points)
	case pdtarget.NodeLine:
		if n.From == nil || n.To == nil {
			return "", errors.New("line node without endpoints")
		}
		el = newElement("line")
		el.X1, el.Y1 = n.From.X, n.From.Y
		el.X2, el.Y2 = n.To.X, n.To.Y
	case pdtarget.NodeCircle:
		if n.At == nil {
			return "", errors.New("circle node without a center")
		}
		el = newElement("circle")
		el.Cx, el.Cy = n.At.X, n.At.Y
		el.R = n.R
	case pdtarget.NodeRect:
		if n.At == nil {
			return "", errors.New("rect node without a position")
		}
		el = newElement("rect")
		el.X, el.Y = n.At.X, n.At.Y
		el.Width, el.Height = n.Width, n.Height
		if n.Rx > 0 {
			el.Rx = n.Rx
		}
	case pdtarget.NodeText:
		if n.At == nil {
			return "", errors.New("text node without an anchor")
		}
		el = newElement("text")
		el.X, el.Y = n.At.X, n.At.Y
		el.FontSize = n.FontSize
		el.FontWeight = n.FontWeight
		el.Style = fmt.Sprintf("font-family: %s", svg.FontFamily)
		el.Attributes = fmt.Sprintf(`dy="%s" text-anchor="middle"`, textBaselineShift)
		el.Content = RenderText(n.Text, n.At.X, n.FontSize)
	default:
		return "", fmt.Errorf("unknown node kind %q", n.Kind)
	}

	el.Fill = n.Fill
	el.Stroke = n.Stroke
	if n.StrokeWidth > 0 {
		el.StrokeWidth = n.StrokeWidth
	}
	el.StrokeLinecap = n.StrokeLinecap
	el.StrokeLinejoin = n.StrokeLinejoin
	return el.render(), nil
}

// RenderText escapes text for use as element content. Multi-line text becomes
// one tspan per line, the block still centered on the anchor.
func RenderText(text string, x, fontSize float64) string {
	if !strings.Contains(text, "\n") {
		return svg.EscapeText(text)
	}
	lines := strings.Split(text, "\n")
	rendered := make([]string, 0, len(lines))
	for i, line := range lines {
		dy := fontSize * lineHeight
		if i == 0 {
			dy = -fontSize * lineHeight * float64(len(lines)-1) / 2
		}
		escaped := svg.EscapeText(line)
		if escaped == "" {
			// an empty tspan would collapse the line
			escaped = " "
		}
		rendered = append(rendered, fmt.Sprintf(`<tspan x="%s" dy="%s">%s</tspan>`, num(x), num(dy), escaped))
	}
	return strings.Join(rendered, "")
}
