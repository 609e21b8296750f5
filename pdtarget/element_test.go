package pdtarget

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachboard/playdiagram/lib/geo"
)

func TestDecodeElement(t *testing.T) {
	var els []*Element
	err := json.Unmarshal([]byte(`[
		{"id": 1700000000001, "type": "player", "points": [{"x": 10, "y": 20}], "label": "QB", "shape": "circle", "variant": "filled"},
		{"id": "route-1", "type": "polyline", "points": [{"x": 0, "y": 0}, {"x": 50, "y": 0}], "style": "zigzag", "endType": "arrow", "segmentStyles": [null]},
		{"type": "shape", "shapeType": "star", "points": [{"x": 1, "y": 1}], "groupId": "g1"}
	]`), &els)
	require.NoError(t, err)
	require.Len(t, els, 3)

	assert.Equal(t, ElementID("1700000000001"), els[0].ID)
	assert.Equal(t, ElementPlayer, els[0].Type)

	assert.Equal(t, ElementID("route-1"), els[1].ID)
	assert.Equal(t, ElementPoly, els[1].Type)
	assert.Equal(t, LineZigzag, els[1].SegmentStyle(0))

	assert.Equal(t, "g1", els[2].GroupID)
	for _, el := range els {
		assert.NoError(t, el.Validate())
	}
}

func TestDecodeBadID(t *testing.T) {
	var el Element
	err := json.Unmarshal([]byte(`{"id": {"nested": true}, "type": "player"}`), &el)
	assert.Error(t, err)
}

func TestDecodeNumericStrings(t *testing.T) {
	tcs := []struct {
		raw         string
		strokeWidth float64
		fontSize    float64
		ok          bool
	}{
		{raw: `{"strokeWidth": 7, "fontSize": 18.5}`, strokeWidth: 7, fontSize: 18.5, ok: true},
		{raw: `{"strokeWidth": "7", "fontSize": "18"}`, strokeWidth: 7, fontSize: 18, ok: true},
		{raw: `{"strokeWidth": " 4.5 "}`, strokeWidth: 4.5, ok: true},
		{raw: `{"strokeWidth": "", "fontSize": null}`, ok: true},
		{raw: `{"strokeWidth": "wide"}`},
		{raw: `{"fontSize": true}`},
	}
	for _, tc := range tcs {
		var el Element
		err := json.Unmarshal([]byte(tc.raw), &el)
		if !tc.ok {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.strokeWidth, el.StrokeWidth, tc.raw)
		assert.Equal(t, tc.fontSize, el.FontSize, tc.raw)
	}

	// the mode default only applies when no width is stored
	var el Element
	require.NoError(t, json.Unmarshal([]byte(`{"type": "poly", "strokeWidth": "3"}`), &el))
	s := (*RenderOptions)(nil).Style()
	assert.Equal(t, 3., s.StrokeWidth(&el))
}

func TestDecodeElementKeepsBadRecords(t *testing.T) {
	el := DecodeElement([]byte(`{"id": 9, "type": "poly", "points": [{"x": 0, "y": 0}, {"x": "1", "y": 1}]}`))
	require.Error(t, el.DecodeErr)
	assert.Equal(t, ElementID("9"), el.ID)
	assert.Equal(t, ElementPoly, el.Type)
	assert.Empty(t, el.Points)
	err := el.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed element")

	el = DecodeElement([]byte(`42`))
	assert.Error(t, el.DecodeErr)
	assert.Error(t, el.Validate())

	el = DecodeElement([]byte(`{"id": 1, "type": "poly", "points": [{"x": 0, "y": 0}, {"x": 1, "y": 1}], "strokeWidth": "7"}`))
	require.NoError(t, el.DecodeErr)
	assert.Equal(t, 7., el.StrokeWidth)
	assert.NoError(t, el.Validate())
}

func TestSegmentStyle(t *testing.T) {
	el := &Element{
		Type:          ElementPoly,
		Style:         LineDashed,
		SegmentStyles: []LineStyle{LineZigzag, ""},
	}
	assert.Equal(t, LineZigzag, el.SegmentStyle(0))
	assert.Equal(t, LineDashed, el.SegmentStyle(1), "empty override falls back")
	assert.Equal(t, LineDashed, el.SegmentStyle(5), "short override list falls back")

	el.Style = ""
	assert.Equal(t, LineSolid, el.SegmentStyle(5))
}

func TestEffectiveEndType(t *testing.T) {
	assert.Equal(t, EndNone, (&Element{}).EffectiveEndType())
	assert.Equal(t, EndNone, (&Element{EndType: "banana"}).EffectiveEndType())
	assert.Equal(t, EndT, (&Element{EndType: EndT}).EffectiveEndType())
}

func TestValidate(t *testing.T) {
	p := geo.NewPoint
	tcs := []struct {
		name string
		el   *Element
		ok   bool
	}{
		{"nil", nil, false},
		{"poly no points", &Element{Type: ElementPoly}, false},
		{"poly one point", &Element{Type: ElementPoly, Points: []*geo.Point{p(0, 0)}}, false},
		{"poly nil point", &Element{Type: ElementPoly, Points: []*geo.Point{p(0, 0), nil}}, false},
		{"poly NaN", &Element{Type: ElementPoly, Points: []*geo.Point{p(0, 0), p(math.NaN(), 1)}}, false},
		{"poly", &Element{Type: ElementPoly, Points: []*geo.Point{p(0, 0), p(1, 1)}}, true},
		{"unknown type", &Element{Type: "blob", Points: []*geo.Point{p(0, 0)}}, false},
		{"unknown shape", &Element{Type: ElementShape, ShapeType: "hexagon", Points: []*geo.Point{p(0, 0)}}, false},
		{"shape", &Element{Type: ElementShape, ShapeType: ShapeLock, Points: []*geo.Point{p(0, 0)}}, true},
		{"text", &Element{Type: ElementText, Text: "Trips", Points: []*geo.Point{p(0, 0)}}, true},
	}
	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.el.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCopyIsDeep(t *testing.T) {
	el := &Element{Type: ElementPoly, Points: []*geo.Point{geo.NewPoint(1, 2)}, SegmentStyles: []LineStyle{LineDashed}}
	c := el.Copy()
	c.Points[0].X = 99
	c.SegmentStyles[0] = LineZigzag
	assert.Equal(t, 1., el.Points[0].X)
	assert.Equal(t, LineDashed, el.SegmentStyles[0])
}

func TestStyleByOptions(t *testing.T) {
	var nilOpts *RenderOptions
	s := nilOpts.Style()
	assert.Equal(t, ModeCompactPreview, s.Mode)
	assert.Equal(t, 950., s.Canvas.Width)
	assert.Equal(t, 600., s.Canvas.Height)
	assert.Equal(t, 15., s.TBlockHalfLength)
	assert.Equal(t, 30., s.ShapeSize)
	assert.Equal(t, 7., s.DefaultStrokeWidth)

	wide := (&RenderOptions{Mode: ModeFullEditable, WidthScale: WidthWide, FixedViewport: true}).Style()
	assert.Equal(t, 900., wide.Canvas.Width)
	assert.Equal(t, 23., wide.TBlockHalfLength)
	assert.Equal(t, 90., wide.ShapeSize)
	assert.InDelta(t, 20, wide.ArrowGlyphBody, 1e-9)
	assert.Equal(t, 170., wide.TextOnlyFontSize)
	assert.True(t, wide.FixedViewport)

	assert.InDelta(t, 42, s.ArrowLength(7), 1e-9)
	assert.InDelta(t, 24.5, s.ArrowWidth(7), 1e-9)
	assert.InDelta(t, 29.4, s.ArrowShortening(7), 1e-9)
	assert.LessOrEqual(t, s.ArrowShortening(7), s.ArrowLength(7))
}
