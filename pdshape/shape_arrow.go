package pdshape

import (
	"github.com/coachboard/playdiagram/lib/color"
	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/pdtarget"
)

func arrowLeft(anchor *geo.Point, c string, s *pdtarget.Style) *pdtarget.Node {
	return arrowGlyph(anchor, -1, c, s)
}

func arrowRight(anchor *geo.Point, c string, s *pdtarget.Style) *pdtarget.Node {
	return arrowGlyph(anchor, 1, c, s)
}

// arrowGlyph is a thick horizontal shaft ending in an open triangular head.
// dir is +1 for a rightward arrow and -1 for a leftward one.
func arrowGlyph(anchor *geo.Point, dir float64, c string, s *pdtarget.Style) *pdtarget.Node {
	length := s.ShapeSize * 3
	head := s.ShapeSize * 0.8

	tip := anchor.Offset(dir*length/2, 0)
	base := tip.Offset(-dir*head, 0)

	shaft := &pdtarget.Node{
		Kind:          pdtarget.NodeLine,
		From:          anchor.Offset(-dir*length/2, 0),
		To:            base,
		Stroke:        c,
		StrokeWidth:   s.ArrowGlyphBody,
		StrokeLinecap: pdtarget.LinecapRound,
	}
	arrowhead := &pdtarget.Node{
		Kind: pdtarget.NodePolygon,
		Points: []*geo.Point{
			tip,
			base.Offset(0, -head/2),
			base.Offset(0, head/2),
		},
		Fill:           color.None,
		Stroke:         c,
		StrokeWidth:    s.ArrowGlyphBody,
		StrokeLinejoin: pdtarget.LinejoinRound,
	}
	return pdtarget.NewGroup("", shaft, arrowhead)
}
