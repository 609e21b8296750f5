package pdshape

import (
	"github.com/coachboard/playdiagram/lib/color"
	"github.com/coachboard/playdiagram/pdtarget"
)

// BuildPlayer draws a player element: a circle or square marker with its label
// inside, or the bare label for text-only players.
// Labels and colors are drawn as stored; resolve them first with pdpalette.
func BuildPlayer(el *pdtarget.Element, s *pdtarget.Style) *pdtarget.Node {
	at := el.Anchor()
	if at == nil {
		return nil
	}
	if s == nil {
		s = (*pdtarget.RenderOptions)(nil).Style()
	}
	c := s.Color(el)

	if el.IsTextOnly() {
		fontSize := el.FontSize
		if fontSize <= 0 {
			fontSize = s.TextOnlyFontSize
		}
		return pdtarget.NewGroup(el.ID, centeredText(at, el.Label, fontSize, c))
	}

	fill, ink := color.White, c
	if el.Variant == pdtarget.VariantFilled {
		fill, ink = c, color.White
	}

	size := s.MarkerSize
	marker := &pdtarget.Node{
		Fill:        fill,
		Stroke:      c,
		StrokeWidth: s.MarkerStrokeWidth,
	}
	if el.Shape == pdtarget.PlayerSquare {
		marker.Kind = pdtarget.NodeRect
		marker.At = at.Offset(-size/2, -size/2)
		marker.Width = size
		marker.Height = size
	} else {
		marker.Kind = pdtarget.NodeCircle
		marker.At = at.Copy()
		marker.R = size / 2
	}
	return pdtarget.NewGroup(el.ID, marker, centeredText(at, el.Label, s.MarkerFontSize, ink))
}

// BuildText draws a free-floating caption.
func BuildText(el *pdtarget.Element, s *pdtarget.Style) *pdtarget.Node {
	at := el.Anchor()
	if at == nil {
		return nil
	}
	if s == nil {
		s = (*pdtarget.RenderOptions)(nil).Style()
	}
	fontSize := el.FontSize
	if fontSize <= 0 {
		fontSize = s.TextFontSize
	}
	return pdtarget.NewGroup(el.ID, &pdtarget.Node{
		Kind:     pdtarget.NodeText,
		At:       at.Copy(),
		Text:     el.Text,
		FontSize: fontSize,
		Fill:     s.Color(el),
	})
}
