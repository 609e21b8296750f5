package geo

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func (p1 *Point) Equals(p2 *Point) bool {
	if p1 == nil {
		return p2 == nil
	} else if p2 == nil {
		return false
	}
	return (p1.X == p2.X) && (p1.Y == p2.Y)
}

func (p *Point) Copy() *Point {
	return &Point{X: p.X, Y: p.Y}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p *Point) IsFinite() bool {
	return IsFinite(p.X) && IsFinite(p.Y)
}

// VectorTo is the displacement from start to end.
func (start *Point) VectorTo(end *Point) Vector {
	return Vector{end.X - start.X, end.Y - start.Y}
}

// AddVector returns a new point moved by v.
func (p *Point) AddVector(v Vector) *Point {
	return NewPoint(p.X+v.X, p.Y+v.Y)
}

// point t% of the way between a and b
func (a *Point) Interpolate(b *Point, t float64) *Point {
	return NewPoint(
		a.X+(b.X-a.X)*t,
		a.Y+(b.Y-a.Y)*t,
	)
}

// Offset returns a new point translated by (dx, dy).
func (p *Point) Offset(dx, dy float64) *Point {
	return NewPoint(p.X+dx, p.Y+dy)
}
