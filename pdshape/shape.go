// Package pdshape draws the fixed-topology glyphs of a play diagram:
// decorative shapes, player markers and free text captions.
//
// Every builder is centered on its anchor and sized from pdtarget.Style.
package pdshape

import (
	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/pdtarget"
)

// DefaultText is shown by a textbox shape with no text of its own.
const DefaultText = "Text"

type builder func(anchor *geo.Point, color string, s *pdtarget.Style) *pdtarget.Node

var builders = map[pdtarget.ShapeType]builder{
	pdtarget.ShapeStar:         star,
	pdtarget.ShapeLock:         lock,
	pdtarget.ShapeArrowLeft:    arrowLeft,
	pdtarget.ShapeArrowRight:   arrowRight,
	pdtarget.ShapeTriangleUp:   triangleUp,
	pdtarget.ShapeTriangleDown: triangleDown,
}

// BuildShape draws shapeType at anchor. text is only read by textbox shapes.
// An unknown shapeType yields nil.
func BuildShape(anchor *geo.Point, shapeType pdtarget.ShapeType, color, text string, s *pdtarget.Style) *pdtarget.Node {
	if anchor == nil {
		return nil
	}
	if s == nil {
		s = (*pdtarget.RenderOptions)(nil).Style()
	}
	if shapeType == pdtarget.ShapeTextBox {
		return textBox(anchor, color, text, s)
	}
	b, ok := builders[shapeType]
	if !ok {
		return nil
	}
	return b(anchor, color, s)
}

func centeredText(at *geo.Point, text string, fontSize float64, fill string) *pdtarget.Node {
	return &pdtarget.Node{
		Kind:       pdtarget.NodeText,
		At:         at.Copy(),
		Text:       text,
		FontSize:   fontSize,
		FontWeight: pdtarget.WeightBold,
		Fill:       fill,
	}
}
