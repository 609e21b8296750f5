// Package pdcap draws the terminal decoration of a route: arrowhead, T-block or dot.
package pdcap

import (
	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/pdtarget"
)

// BuildEndCap returns the cap drawn at the last point of points, or nil when
// endType is none, unknown, or there is no point to attach to.
// The cap direction is taken from the last two points; coincident points, or a
// single point, fall back to pointing along +x.
func BuildEndCap(points []*geo.Point, endType pdtarget.EndType, color string, strokeWidth float64, s *pdtarget.Style) *pdtarget.Node {
	if len(points) == 0 || points[len(points)-1] == nil {
		return nil
	}
	if s == nil {
		s = (*pdtarget.RenderOptions)(nil).Style()
	}
	end := points[len(points)-1]

	switch endType {
	case pdtarget.EndDot:
		return &pdtarget.Node{
			Kind: pdtarget.NodeCircle,
			At:   end.Copy(),
			R:    s.DotRadius,
			Fill: color,
		}
	case pdtarget.EndT:
		half := heading(points).Right().Scale(s.TBlockHalfLength)
		return &pdtarget.Node{
			Kind:          pdtarget.NodeLine,
			From:          end.AddVector(half.Scale(-1)),
			To:            end.AddVector(half),
			Stroke:        color,
			StrokeWidth:   strokeWidth,
			StrokeLinecap: pdtarget.LinecapRound,
		}
	case pdtarget.EndArrow:
		return &pdtarget.Node{
			Kind:   pdtarget.NodePolygon,
			Points: Arrowhead(end, heading(points), s.ArrowLength(strokeWidth), s.ArrowWidth(strokeWidth)),
			Fill:   color,
		}
	}
	return nil
}

// Arrowhead is the triangle with its tip at tip pointing along dir, a unit vector.
// The base sits length behind the tip and is width across.
func Arrowhead(tip *geo.Point, dir geo.Vector, length, width float64) []*geo.Point {
	base := tip.AddVector(dir.Scale(-length))
	half := dir.Right().Scale(width / 2)
	return []*geo.Point{
		tip.Copy(),
		base.AddVector(half.Scale(-1)),
		base.AddVector(half),
	}
}

// heading is the unit direction of the last segment.
func heading(points []*geo.Point) geo.Vector {
	if len(points) < 2 || points[len(points)-2] == nil {
		return geo.NewVector(1, 0)
	}
	dir := geo.NewVector(geo.UnitVector(points[len(points)-2], points[len(points)-1]))
	if dir.IsZero() {
		return geo.NewVector(1, 0)
	}
	return dir
}
