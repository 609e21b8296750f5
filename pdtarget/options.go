package pdtarget

import (
	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/lib/go2"
)

type Mode string

const (
	ModeCompactPreview Mode = "compact-preview"
	ModeFullEditable   Mode = "full-editable"
)

type WidthScale string

const (
	WidthDefault WidthScale = "default"
	// WidthWide is the offensive-line card layout where glyphs are drawn larger.
	WidthWide WidthScale = "wide"
)

// RenderOptions is what a caller passes alongside an element snapshot.
// The zero value means a compact preview at default width with a content-fitted viewport.
type RenderOptions struct {
	Mode          Mode       `json:"mode"`
	FixedViewport bool       `json:"fixedViewport"`
	WidthScale    WidthScale `json:"widthScale"`
}

func (o *RenderOptions) mode() Mode {
	if o == nil || o.Mode != ModeFullEditable {
		return ModeCompactPreview
	}
	return ModeFullEditable
}

func (o *RenderOptions) wide() bool {
	return o != nil && o.WidthScale == WidthWide
}

// Padding controls how far each point pushes the content bounds outwards.
type Padding struct {
	// Marker is used for circle and square player markers.
	Marker float64 `json:"marker"`
	// Other is used for every non-player element.
	Other float64 `json:"other"`
	// TextOnlyFontSize is assumed for text-only players without a font size; half of it is the pad.
	TextOnlyFontSize float64 `json:"textOnlyFontSize"`
}

// Style holds every mode-dependent constant. It is derived once from
// RenderOptions and threaded through the renderers.
type Style struct {
	Mode          Mode `json:"mode"`
	Wide          bool `json:"wide"`
	FixedViewport bool `json:"fixedViewport"`

	Canvas *geo.Box `json:"canvas"`

	DefaultColor       string  `json:"defaultColor"`
	DefaultStrokeWidth float64 `json:"defaultStrokeWidth"`
	DashArray          string  `json:"dashArray"`

	// arrowhead length and width are multiples of the stroke width
	ArrowLengthFactor float64 `json:"arrowLengthFactor"`
	ArrowWidthFactor  float64 `json:"arrowWidthFactor"`
	// share of the arrow length the stroke is pulled back by
	ArrowPullback float64 `json:"arrowPullback"`

	ZigzagStep      float64 `json:"zigzagStep"`
	ZigzagAmplitude float64 `json:"zigzagAmplitude"`
	ZigzagTail      float64 `json:"zigzagTail"`

	DotRadius        float64 `json:"dotRadius"`
	TBlockHalfLength float64 `json:"tBlockHalfLength"`

	ShapeSize      float64 `json:"shapeSize"`
	ShapeFontSize  float64 `json:"shapeFontSize"`
	LockStroke     float64 `json:"lockStroke"`
	KeyholeRadius  float64 `json:"keyholeRadius"`
	LockCorner     float64 `json:"lockCorner"`
	ArrowGlyphBody float64 `json:"arrowGlyphBody"`

	MarkerSize        float64 `json:"markerSize"`
	MarkerStrokeWidth float64 `json:"markerStrokeWidth"`
	MarkerFontSize    float64 `json:"markerFontSize"`
	TextOnlyFontSize  float64 `json:"textOnlyFontSize"`
	TextFontSize      float64 `json:"textFontSize"`

	Padding Padding `json:"padding"`
	Margin  float64 `json:"margin"`
}

const (
	baseShapeSize = 30.
	// wide layouts draw glyphs three times larger
	wideShapeScale = 3.
	// T-block half lengths; the wide one is the narrow one grown by about half
	narrowTBlock = 15.
	wideTBlock   = 23.
)

// Style derives the render constants for these options.
func (o *RenderOptions) Style() *Style {
	s := &Style{
		Mode:          o.mode(),
		Wide:          o.wide(),
		FixedViewport: o != nil && o.FixedViewport,

		DefaultColor: "#000000",

		ArrowLengthFactor: 6,
		ArrowWidthFactor:  3.5,
		ArrowPullback:     0.7,

		ZigzagStep:      10,
		ZigzagAmplitude: 0.5,
		ZigzagTail:      5,

		DotRadius:        6,
		TBlockHalfLength: narrowTBlock,

		ShapeSize:     baseShapeSize,
		ShapeFontSize: 24,
		LockStroke:    4,
		KeyholeRadius: 4,
		LockCorner:    3,

		MarkerStrokeWidth: 2,
		TextFontSize:      24,

		Padding: Padding{
			Marker:           20,
			Other:            5,
			TextOnlyFontSize: 30,
		},
		Margin: 10,
	}

	if s.Wide {
		s.TBlockHalfLength = wideTBlock
		s.ShapeSize *= wideShapeScale
	}
	// 20 units of stroke at the wide shape size
	s.ArrowGlyphBody = s.ShapeSize * 2 / 9

	switch s.Mode {
	case ModeFullEditable:
		s.Canvas = geo.NewBox(geo.NewPoint(0, 0), 900, 600)
		s.DefaultStrokeWidth = 4
		s.DashArray = "10,5"
		s.MarkerSize = 30
		s.MarkerFontSize = 16
		s.TextOnlyFontSize = 24
	default:
		s.Canvas = geo.NewBox(geo.NewPoint(0, 0), 950, 600)
		s.DefaultStrokeWidth = 7
		s.DashArray = "20,12"
		s.MarkerSize = 42
		s.MarkerFontSize = 22
		s.TextOnlyFontSize = 50
	}
	if s.Wide {
		s.TextOnlyFontSize = 170
	}
	return s
}

// StrokeWidth is the element's stroke width or the mode default.
func (s *Style) StrokeWidth(el *Element) float64 {
	if el.StrokeWidth > 0 {
		return el.StrokeWidth
	}
	return s.DefaultStrokeWidth
}

// Color is the element's color or the default ink.
func (s *Style) Color(el *Element) string {
	return go2.Default(el.Color, s.DefaultColor)
}

// ArrowLength is the full arrowhead length for a stroke width.
func (s *Style) ArrowLength(strokeWidth float64) float64 {
	return strokeWidth * s.ArrowLengthFactor
}

// ArrowWidth is the full arrowhead base width for a stroke width.
func (s *Style) ArrowWidth(strokeWidth float64) float64 {
	return strokeWidth * s.ArrowWidthFactor
}

// ArrowShortening is how far the stroke stops short of an arrow-ended path.
func (s *Style) ArrowShortening(strokeWidth float64) float64 {
	return s.ArrowLength(strokeWidth) * s.ArrowPullback
}
