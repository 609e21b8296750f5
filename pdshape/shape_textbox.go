package pdshape

import (
	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/pdtarget"
)

// textBox has no outline or fill of its own; only the label is drawn.
func textBox(anchor *geo.Point, color, text string, s *pdtarget.Style) *pdtarget.Node {
	if text == "" {
		text = DefaultText
	}
	return centeredText(anchor, text, s.ShapeFontSize, color)
}
