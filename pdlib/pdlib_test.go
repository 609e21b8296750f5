package pdlib_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachboard/playdiagram/lib/log"
	"github.com/coachboard/playdiagram/pdlib"
	"github.com/coachboard/playdiagram/pdpalette"
	"github.com/coachboard/playdiagram/pdrenderers/pdsvg"
	"github.com/coachboard/playdiagram/pdtarget"
)

const trips = `{
	"name": "Trips Right Smash",
	"elements": [
		{"id": 1, "type": "player", "points": [{"x": 475, "y": 400}], "label": "QB", "positionKey": "QB", "shape": "circle", "variant": "filled"},
		{"id": 2, "type": "player", "points": [{"x": 700, "y": 300}], "label": "H", "positionKey": "H", "shape": "circle"},
		{"id": 3, "type": "polyline", "points": [{"x": 700, "y": 300}, {"x": 700, "y": 220}, {"x": 820, "y": 120}], "endType": "arrow", "style": "solid", "segmentStyles": [null, "zigzag"]},
		{"id": 4, "type": "poly", "points": []},
		{"id": 5, "type": "shape", "shapeType": "star", "points": [{"x": 820, "y": 120}], "color": "#eab308"}
	]
}`

func TestDecode(t *testing.T) {
	t.Parallel()

	els, err := pdlib.Decode([]byte(trips))
	require.NoError(t, err)
	require.Len(t, els, 5)
	assert.Equal(t, pdtarget.ElementID("3"), els[2].ID)
	assert.Equal(t, pdtarget.ElementPoly, els[2].Type)

	els, err = pdlib.Decode([]byte(` [{"type": "text", "points": [{"x": 1, "y": 2}], "text": "hi"}]`))
	require.NoError(t, err)
	require.Len(t, els, 1)

	els, err = pdlib.Decode([]byte(`{"elements": []}`))
	require.NoError(t, err)
	assert.Empty(t, els)

	for _, raw := range []string{``, `{"name": "x"}`, `"elements"`, `{"elements": {}}`, `[{"id": 1}`} {
		_, err := pdlib.Decode([]byte(raw))
		assert.Error(t, err, raw)
		if err != nil {
			assert.True(t, strings.HasPrefix(err.Error(), "failed to decode diagram"), err.Error())
		}
	}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	d, err := pdlib.Compile(ctx, []byte(trips), &pdlib.CompileOptions{
		Palette: &pdpalette.Config{
			Names:  map[string]string{"H": "A"},
			Colors: map[string]string{"A": "#101010"},
		},
	})
	require.NoError(t, err)

	assert.Len(t, d.Tree.Nodes, 4)
	require.Len(t, d.Tree.Skipped, 1)
	assert.Equal(t, pdtarget.ElementID("4"), d.Tree.Skipped[0].ID)

	// the empty poly is also a schema issue, but not a strict compile
	require.NotEmpty(t, d.Issues)
	assert.Equal(t, 3, d.Issues[0].Index)

	assert.Equal(t, "A", d.Elements[1].Label)
	assert.Equal(t, "#101010", d.Elements[1].Color)
	assert.Equal(t, "#1e3a5f", d.Elements[0].Color)
}

func TestCompileStrict(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	_, err := pdlib.Compile(ctx, []byte(trips), &pdlib.CompileOptions{Strict: true})
	require.Error(t, err)

	var lerr pdlib.LintError
	require.True(t, errors.As(err, &lerr), err.Error())
	assert.NotEmpty(t, lerr.Issues)
	assert.Contains(t, err.Error(), "elements[3]/points")
}

func TestCompileSelect(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	d, err := pdlib.Compile(ctx, []byte(trips), &pdlib.CompileOptions{
		Select: `map(select(.type == "poly" and (.points | length) > 1))`,
	})
	require.NoError(t, err)
	require.Len(t, d.Elements, 1)
	require.Len(t, d.Tree.Nodes, 1)
	assert.Empty(t, d.Tree.Skipped)

	_, err = pdlib.Compile(ctx, []byte(trips), &pdlib.CompileOptions{Select: `map(`})
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	out, d, err := pdlib.Render(ctx, []byte(trips), &pdlib.CompileOptions{
		Render: &pdtarget.RenderOptions{
			Mode:          pdtarget.ModeFullEditable,
			FixedViewport: true,
			WidthScale:    pdtarget.WidthWide,
		},
	}, &pdsvg.RenderOpts{NoXMLTag: true})
	require.NoError(t, err)
	require.NotNil(t, d)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<svg"))
	assert.Contains(t, s, `viewBox="0 0 900 600"`)
	assert.Contains(t, s, `data-id="5"`)
	assert.NotContains(t, s, `data-id="4"`)
}

func TestCompileBadDocument(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	_, err := pdlib.Compile(ctx, []byte(`{"play": []}`), nil)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to compile diagram"), err.Error())
}

const mistyped = `[
	{"id": 1, "type": "poly", "points": [{"x": 0, "y": 0}, {"x": 100, "y": 0}], "strokeWidth": "11", "endType": "none"},
	{"id": 2, "type": "player", "points": [{"x": "12", "y": 40}], "label": "QB"},
	{"id": 3, "type": "player", "points": [{"x": 300, "y": 40}], "label": {"text": "RB"}},
	{"id": 4, "type": "text", "points": [{"x": 50, "y": 90}], "text": "Cover 2", "fontSize": " 30 "},
	null
]`

func TestDecodeKeepsMistypedRecords(t *testing.T) {
	t.Parallel()

	els, err := pdlib.Decode([]byte(mistyped))
	require.NoError(t, err)
	require.Len(t, els, 5)

	assert.Equal(t, 11., els[0].StrokeWidth)
	assert.NoError(t, els[0].DecodeErr)
	assert.Equal(t, 30., els[3].FontSize)

	for _, i := range []int{1, 2} {
		assert.Error(t, els[i].DecodeErr, "element %d", i)
		assert.Equal(t, pdtarget.ElementPlayer, els[i].Type)
		assert.Error(t, els[i].Validate())
	}
	assert.Equal(t, pdtarget.ElementID("3"), els[2].ID)
	assert.Nil(t, els[4])
}

func TestCompileSkipsMistypedRecords(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	d, err := pdlib.Compile(ctx, []byte(mistyped), nil)
	require.NoError(t, err)

	require.Len(t, d.Tree.Nodes, 2)
	route := d.Tree.Nodes[0]
	assert.Equal(t, pdtarget.ElementID("1"), route.ID)
	require.NotEmpty(t, route.Children)
	assert.Equal(t, 11., route.Children[0].StrokeWidth)

	require.Len(t, d.Tree.Skipped, 3)
	assert.Equal(t, 1, d.Tree.Skipped[0].Index)
	assert.Contains(t, d.Tree.Skipped[0].Reason, "malformed element")
	assert.Equal(t, pdtarget.ElementID("3"), d.Tree.Skipped[1].ID)
	assert.Equal(t, 4, d.Tree.Skipped[2].Index)
}

func TestRenderNumericStringStrokeWidth(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	raw := `[
		{"id": "r", "type": "poly", "points": [{"x": 0, "y": 0}, {"x": 80, "y": 40}], "strokeWidth": "4", "endType": "t"},
		{"id": "p", "type": "player", "points": [{"x": 10, "y": 10}], "label": "X"}
	]`
	out, d, err := pdlib.Render(ctx, []byte(raw), nil, &pdsvg.RenderOpts{NoXMLTag: true})
	require.NoError(t, err)
	assert.Empty(t, d.Tree.Skipped)
	assert.Empty(t, d.Issues)
	assert.Contains(t, string(out), `stroke-width="4"`)
	assert.Contains(t, string(out), `data-id="p"`)
}
