package pdscene

import (
	"math"

	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/lib/go2"
	"github.com/coachboard/playdiagram/pdtarget"
)

// ComputeContentBounds fits a box around every drawn point, each point grown by
// its element's padding, then adds margin on all sides. Players, shapes and text
// are drawn at their anchor only, so any further points they carry are ignored.
// It returns nil when there is no usable point at all.
func ComputeContentBounds(elements []*pdtarget.Element, pad pdtarget.Padding, margin float64) *geo.Box {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false

	for _, el := range elements {
		if el == nil {
			continue
		}
		d := padding(el, pad)
		points := el.Points
		if el.Type != pdtarget.ElementPoly && len(points) > 1 {
			points = points[:1]
		}
		for _, p := range points {
			if p == nil || !p.IsFinite() {
				continue
			}
			found = true
			minX = go2.Min(minX, p.X-d)
			minY = go2.Min(minY, p.Y-d)
			maxX = go2.Max(maxX, p.X+d)
			maxY = go2.Max(maxY, p.Y+d)
		}
	}
	if !found {
		return nil
	}
	return geo.NewBoxFromExtents(minX, minY, maxX, maxY).Expand(margin)
}

func padding(el *pdtarget.Element, pad pdtarget.Padding) float64 {
	if el.Type != pdtarget.ElementPlayer {
		return pad.Other
	}
	if el.IsTextOnly() {
		fontSize := el.FontSize
		if fontSize <= 0 {
			fontSize = pad.TextOnlyFontSize
		}
		return fontSize / 2
	}
	return pad.Marker
}

// Viewport picks the visible area: the fixed canvas when requested, the fitted
// content bounds otherwise. An empty diagram falls back to the canvas.
func Viewport(elements []*pdtarget.Element, s *pdtarget.Style) *geo.Box {
	if s.FixedViewport {
		return s.Canvas.Copy()
	}
	if b := ComputeContentBounds(elements, s.Padding, s.Margin); b != nil {
		return b
	}
	return s.Canvas.Copy()
}
