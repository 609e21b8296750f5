package pdcap_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/pdcap"
	"github.com/coachboard/playdiagram/pdpath"
	"github.com/coachboard/playdiagram/pdtarget"
)

func wideStyle() *pdtarget.Style {
	return (&pdtarget.RenderOptions{WidthScale: pdtarget.WidthWide}).Style()
}

func assertPoint(t *testing.T, exp, got *geo.Point) {
	t.Helper()
	require.NotNil(t, got)
	assert.InDelta(t, exp.X, got.X, 1e-9, "x")
	assert.InDelta(t, exp.Y, got.Y, 1e-9, "y")
}

func TestTBlockWide(t *testing.T) {
	t.Parallel()

	points := []*geo.Point{geo.NewPoint(0, 0), geo.NewPoint(50, 0)}
	n := pdcap.BuildEndCap(points, pdtarget.EndT, "#123456", 14, wideStyle())
	require.NotNil(t, n)
	assert.Equal(t, pdtarget.NodeLine, n.Kind)
	assertPoint(t, geo.NewPoint(50, -23), n.From)
	assertPoint(t, geo.NewPoint(50, 23), n.To)
	assert.Equal(t, pdtarget.LinecapRound, n.StrokeLinecap)
	assert.Equal(t, 14., n.StrokeWidth)
	assert.Equal(t, "#123456", n.Stroke)
}

func TestTBlockNarrowDiagonal(t *testing.T) {
	t.Parallel()

	points := []*geo.Point{geo.NewPoint(0, 0), geo.NewPoint(30, 40)}
	n := pdcap.BuildEndCap(points, pdtarget.EndT, "red", 7, nil)
	require.NotNil(t, n)
	assert.InDelta(t, 30, geo.Distance(n.From, n.To), 1e-9)
	mid := n.From.Interpolate(n.To, 0.5)
	assertPoint(t, points[1], mid)

	// perpendicular to the final segment
	bar := n.From.VectorTo(n.To)
	assert.InDelta(t, 0, bar.X*30+bar.Y*40, 1e-9)
}

func TestDot(t *testing.T) {
	t.Parallel()

	points := []*geo.Point{geo.NewPoint(0, 0), geo.NewPoint(10, 10)}
	n := pdcap.BuildEndCap(points, pdtarget.EndDot, "blue", 7, nil)
	require.NotNil(t, n)
	assert.Equal(t, pdtarget.NodeCircle, n.Kind)
	assert.Equal(t, 6., n.R)
	assert.Equal(t, "blue", n.Fill)
	assertPoint(t, points[1], n.At)
}

func TestNoCap(t *testing.T) {
	t.Parallel()

	points := []*geo.Point{geo.NewPoint(0, 0), geo.NewPoint(10, 10)}
	assert.Nil(t, pdcap.BuildEndCap(points, pdtarget.EndNone, "blue", 7, nil))
	assert.Nil(t, pdcap.BuildEndCap(points, "", "blue", 7, nil))
	assert.Nil(t, pdcap.BuildEndCap(points, "diamond", "blue", 7, nil))
	assert.Nil(t, pdcap.BuildEndCap(nil, pdtarget.EndArrow, "blue", 7, nil))
}

func TestArrow(t *testing.T) {
	t.Parallel()

	points := []*geo.Point{geo.NewPoint(0, 0), geo.NewPoint(100, 0)}
	n := pdcap.BuildEndCap(points, pdtarget.EndArrow, "black", 7, nil)
	require.NotNil(t, n)
	assert.Equal(t, pdtarget.NodePolygon, n.Kind)
	assert.Equal(t, "black", n.Fill)
	assert.Empty(t, n.Stroke)
	require.Len(t, n.Points, 3)
	assertPoint(t, geo.NewPoint(100, 0), n.Points[0])
	assertPoint(t, geo.NewPoint(58, -12.25), n.Points[1])
	assertPoint(t, geo.NewPoint(58, 12.25), n.Points[2])
}

// The shortened stroke must end inside the arrowhead.
func TestArrowCoversShortenedStroke(t *testing.T) {
	t.Parallel()

	st := (*pdtarget.RenderOptions)(nil).Style()
	points := []*geo.Point{geo.NewPoint(10, 20), geo.NewPoint(130, 110)}
	for _, sw := range []float64{2, 4, 7, 14} {
		paths := pdpath.BuildElementPath(points, nil, pdtarget.LineSolid, pdtarget.EndArrow, sw, st)
		vs := paths[len(paths)-1].Vertices()
		strokeEnd := vs[len(vs)-1]

		head := pdcap.BuildEndCap(points, pdtarget.EndArrow, "black", sw, st)
		require.NotNil(t, head)
		back := head.Points[1].Interpolate(head.Points[2], 0.5)
		// stroke end lies between the base of the head and the tip
		toTip := geo.Distance(strokeEnd, points[1])
		assert.Less(t, toTip, geo.Distance(back, points[1]))
		assert.Greater(t, toTip, 0.)
	}
}

func TestDegenerateDirection(t *testing.T) {
	t.Parallel()

	p := geo.NewPoint(5, 5)
	for _, points := range [][]*geo.Point{{p, p.Copy()}, {p}} {
		arrow := pdcap.BuildEndCap(points, pdtarget.EndArrow, "black", 4, nil)
		require.NotNil(t, arrow)
		for _, v := range arrow.Points {
			assert.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y))
		}
		// points back along -x
		assert.Less(t, arrow.Points[1].X, p.X)

		tb := pdcap.BuildEndCap(points, pdtarget.EndT, "black", 4, nil)
		require.NotNil(t, tb)
		assertPoint(t, geo.NewPoint(5, -10), tb.From)
		assertPoint(t, geo.NewPoint(5, 20), tb.To)
	}
}
