package pdshape

import (
	"math"

	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/pdtarget"
)

func triangleUp(anchor *geo.Point, color string, s *pdtarget.Style) *pdtarget.Node {
	return triangle(anchor, -1, color, s)
}

func triangleDown(anchor *geo.Point, color string, s *pdtarget.Style) *pdtarget.Node {
	return triangle(anchor, 1, color, s)
}

// triangle is an equilateral triangle whose centroid sits on anchor.
// apex is -1 for an upward apex and +1 for a downward one.
func triangle(anchor *geo.Point, apex float64, color string, s *pdtarget.Style) *pdtarget.Node {
	side := s.ShapeSize * 1.1
	h := side * math.Sqrt(3) / 2
	return &pdtarget.Node{
		Kind: pdtarget.NodePolygon,
		Points: []*geo.Point{
			anchor.Offset(0, apex*h*2/3),
			anchor.Offset(-side/2, -apex*h/3),
			anchor.Offset(side/2, -apex*h/3),
		},
		Fill: color,
	}
}
