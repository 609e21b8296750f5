package geo

import "fmt"

type Box struct {
	TopLeft *Point  `json:"topLeft"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

// NewBoxFromExtents builds the box spanning [minX, maxX] x [minY, maxY].
func NewBoxFromExtents(minX, minY, maxX, maxY float64) *Box {
	return NewBox(NewPoint(minX, minY), maxX-minX, maxY-minY)
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

// Expand grows the box by d on every side.
func (b *Box) Expand(d float64) *Box {
	return NewBox(NewPoint(b.TopLeft.X-d, b.TopLeft.Y-d), b.Width+2*d, b.Height+2*d)
}

// ViewBox formats the box as an SVG viewBox attribute value.
func (b *Box) ViewBox() string {
	return fmt.Sprintf("%v %v %v %v", b.TopLeft.X, b.TopLeft.Y, b.Width, b.Height)
}
