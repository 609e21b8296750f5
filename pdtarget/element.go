package pdtarget

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coachboard/playdiagram/lib/geo"
)

type ElementType string

const (
	ElementPlayer ElementType = "player"
	ElementShape  ElementType = "shape"
	ElementPoly   ElementType = "poly"
	ElementText   ElementType = "text"

	// elementPolyline is how some stored documents spell ElementPoly.
	elementPolyline ElementType = "polyline"
)

type PlayerShape string

const (
	PlayerCircle   PlayerShape = "circle"
	PlayerSquare   PlayerShape = "square"
	PlayerTextOnly PlayerShape = "text-only"
)

type PlayerVariant string

const (
	VariantFilled  PlayerVariant = "filled"
	VariantOutline PlayerVariant = "outline"
)

type ShapeType string

const (
	ShapeStar         ShapeType = "star"
	ShapeLock         ShapeType = "lock"
	ShapeArrowLeft    ShapeType = "arrow-left"
	ShapeArrowRight   ShapeType = "arrow-right"
	ShapeTriangleUp   ShapeType = "triangle-up"
	ShapeTriangleDown ShapeType = "triangle-down"
	ShapeTextBox      ShapeType = "textbox"
)

var ShapeTypes = map[ShapeType]struct{}{
	ShapeStar:         {},
	ShapeLock:         {},
	ShapeArrowLeft:    {},
	ShapeArrowRight:   {},
	ShapeTriangleUp:   {},
	ShapeTriangleDown: {},
	ShapeTextBox:      {},
}

type EndType string

const (
	EndArrow EndType = "arrow"
	EndT     EndType = "t"
	EndDot   EndType = "dot"
	EndNone  EndType = "none"
)

type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineZigzag LineStyle = "zigzag"
)

// ElementID accepts both JSON strings and JSON numbers; stored diagrams use either.
type ElementID string

func (id *ElementID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ElementID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("element id must be a string or number: %w", err)
	}
	*id = ElementID(n.String())
	return nil
}

// Number is a size that stored documents hold either as a JSON number or as a
// numeric string like "7".
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("expected a number, found %q", s)
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Element is one drawable record. Which fields matter depends on Type.
// Renderers only read elements, never write them.
type Element struct {
	ID      ElementID    `json:"id,omitempty"`
	Type    ElementType  `json:"type"`
	Points  []*geo.Point `json:"points"`
	Color   string       `json:"color,omitempty"`
	GroupID string       `json:"groupId,omitempty"`

	// player
	Label       string        `json:"label,omitempty"`
	PositionKey string        `json:"positionKey,omitempty"`
	Shape       PlayerShape   `json:"shape,omitempty"`
	Variant     PlayerVariant `json:"variant,omitempty"`
	FontSize    float64       `json:"fontSize,omitempty"`

	// shape and text
	ShapeType ShapeType `json:"shapeType,omitempty"`
	Text      string    `json:"text,omitempty"`
	BoxWidth  float64   `json:"boxWidth,omitempty"`
	BoxHeight float64   `json:"boxHeight,omitempty"`

	// poly
	StrokeWidth   float64     `json:"strokeWidth,omitempty"`
	EndType       EndType     `json:"endType,omitempty"`
	Style         LineStyle   `json:"style,omitempty"`
	SegmentStyles []LineStyle `json:"segmentStyles,omitempty"`

	// DecodeErr is set when the stored record could not be decoded.
	// Validate reports it so the record is skipped instead of failing the diagram.
	DecodeErr error `json:"-"`
}

func (el *Element) UnmarshalJSON(b []byte) error {
	type plain Element
	var p struct {
		plain
		FontSize    Number `json:"fontSize,omitempty"`
		StrokeWidth Number `json:"strokeWidth,omitempty"`
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.Type == elementPolyline {
		p.Type = ElementPoly
	}
	*el = Element(p.plain)
	el.FontSize = float64(p.FontSize)
	el.StrokeWidth = float64(p.StrokeWidth)
	return nil
}

// DecodeElement decodes one stored record. A record that does not decode is
// returned with DecodeErr set, keeping its id and type when those are readable.
func DecodeElement(raw []byte) *Element {
	el := &Element{}
	if err := json.Unmarshal(raw, el); err != nil {
		var head struct {
			ID   ElementID   `json:"id"`
			Type ElementType `json:"type"`
		}
		el = &Element{}
		if json.Unmarshal(raw, &head) == nil {
			el.ID = head.ID
			el.Type = head.Type
			if el.Type == elementPolyline {
				el.Type = ElementPoly
			}
		}
		el.DecodeErr = err
	}
	return el
}

// Copy returns a deep copy so callers can derive variants without touching the original.
func (el *Element) Copy() *Element {
	c := *el
	if el.Points != nil {
		c.Points = make([]*geo.Point, len(el.Points))
		for i, p := range el.Points {
			if p != nil {
				c.Points[i] = p.Copy()
			}
		}
	}
	if el.SegmentStyles != nil {
		c.SegmentStyles = append([]LineStyle(nil), el.SegmentStyles...)
	}
	return &c
}

func (el *Element) IsTextOnly() bool {
	return el.Type == ElementPlayer && el.Shape == PlayerTextOnly
}

// Anchor is the single point of a player, shape or text element.
func (el *Element) Anchor() *geo.Point {
	if len(el.Points) == 0 {
		return nil
	}
	return el.Points[0]
}

// SegmentStyle resolves the style of segment i, falling back to the element style and then solid.
func (el *Element) SegmentStyle(i int) LineStyle {
	if i >= 0 && i < len(el.SegmentStyles) && el.SegmentStyles[i] != "" {
		return el.SegmentStyles[i]
	}
	if el.Style != "" {
		return el.Style
	}
	return LineSolid
}

// EffectiveEndType treats an empty or unrecognized end type as none.
func (el *Element) EffectiveEndType() EndType {
	switch el.EndType {
	case EndArrow, EndT, EndDot:
		return el.EndType
	}
	return EndNone
}

var (
	ErrNoPoints     = errors.New("element has no points")
	ErrTooFewPoints = errors.New("poly element needs at least 2 points")
	ErrBadPoint     = errors.New("element has a missing or non-finite point")
)

// Validate reports whether the element can be rendered at all.
// Optional fields (colors, styles, end types, sizes) all have fallbacks and are not checked.
func (el *Element) Validate() error {
	if el == nil {
		return errors.New("nil element")
	}
	if el.DecodeErr != nil {
		return fmt.Errorf("malformed element: %w", el.DecodeErr)
	}
	if len(el.Points) == 0 {
		return ErrNoPoints
	}
	for _, p := range el.Points {
		if p == nil || !p.IsFinite() {
			return ErrBadPoint
		}
	}
	switch el.Type {
	case ElementPlayer, ElementText:
	case ElementShape:
		if _, ok := ShapeTypes[el.ShapeType]; !ok {
			return fmt.Errorf("unknown shape type %q", el.ShapeType)
		}
	case ElementPoly:
		if len(el.Points) < 2 {
			return ErrTooFewPoints
		}
	default:
		return fmt.Errorf("unknown element type %q", el.Type)
	}
	return nil
}

func (s LineStyle) Known() bool {
	switch s {
	case LineSolid, LineDashed, LineZigzag:
		return true
	}
	return false
}
