package pdshape

import (
	"math"

	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/pdtarget"
)

const (
	starPoints     = 10
	starInnerRatio = 0.4
)

// star is a five-pointed star whose first tip points straight up.
func star(anchor *geo.Point, color string, s *pdtarget.Style) *pdtarget.Node {
	return &pdtarget.Node{
		Kind:   pdtarget.NodePolygon,
		Points: geo.PolygonVertices(anchor, starPoints, s.ShapeSize, s.ShapeSize*starInnerRatio, math.Pi/2),
		Fill:   color,
	}
}
