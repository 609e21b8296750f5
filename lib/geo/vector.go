package geo

import "math"

// Vector is a displacement in screen space, where y grows downward.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (a Vector) Add(b Vector) Vector {
	return Vector{a.X + b.X, a.Y + b.Y}
}

func (a Vector) Scale(k float64) Vector {
	return Vector{a.X * k, a.Y * k}
}

func (a Vector) Length() float64 {
	return math.Hypot(a.X, a.Y)
}

// Unit has length 1 and the direction of a. The zero Vector stays zero instead of turning into NaN.
func (a Vector) Unit() Vector {
	if a.IsZero() {
		return Vector{}
	}
	return a.Scale(1 / a.Length())
}

// Right is a turned a quarter clockwise on screen: the right hand side of travel along a.
func (a Vector) Right() Vector {
	return Vector{-a.Y, a.X}
}

func (a Vector) IsZero() bool {
	return a.X == 0 && a.Y == 0
}
