package geo

import "math"

// Distance is the Euclidean distance between a and b.
func Distance(a, b *Point) float64 {
	return a.VectorTo(b).Length()
}

// UnitVector returns the normalized direction from a to b.
// Coincident points yield (0, 0).
func UnitVector(a, b *Point) (ux, uy float64) {
	u := a.VectorTo(b).Unit()
	return u.X, u.Y
}

// Perpendicular rotates (ux, uy) by 90 degrees and scales it by magnitude.
// In screen space (y grows downward) the result points to the right of the direction of travel.
func Perpendicular(ux, uy, magnitude float64) (px, py float64) {
	r := NewVector(ux, uy).Right().Scale(magnitude)
	return r.X, r.Y
}

// PolygonVertices generates count vertices around center, alternating between
// outerRadius (even indices) and innerRadius (odd indices). The angle step is
// 2π/count, starting at startAngle measured counter-clockwise from +x with y pointing down.
func PolygonVertices(center *Point, count int, outerRadius, innerRadius, startAngle float64) []*Point {
	if count <= 0 {
		return nil
	}
	step := 2 * math.Pi / float64(count)
	vertices := make([]*Point, 0, count)
	for i := 0; i < count; i++ {
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		angle := startAngle + float64(i)*step
		vertices = append(vertices, NewPoint(
			center.X+r*math.Cos(angle),
			center.Y-r*math.Sin(angle),
		))
	}
	return vertices
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
