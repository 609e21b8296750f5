// Package pdpath turns polyline points into drawable path descriptors.
//
// Each segment becomes its own descriptor so that segments of one element can
// carry different line styles. Input points are never modified.
package pdpath

import (
	"math"

	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/lib/svg"
	"github.com/coachboard/playdiagram/pdtarget"
)

func styleOrDefault(s *pdtarget.Style) *pdtarget.Style {
	if s == nil {
		return (*pdtarget.RenderOptions)(nil).Style()
	}
	return s
}

// BuildSegmentPath builds the path for the single segment p1 -> p2.
// Solid and dashed segments are one move/line pair; zigzag segments are a sawtooth.
func BuildSegmentPath(p1, p2 *geo.Point, style pdtarget.LineStyle, s *pdtarget.Style) *pdtarget.PathDescriptor {
	return buildSegment(p1, p2, style, 0, styleOrDefault(s))
}

func buildSegment(p1, p2 *geo.Point, style pdtarget.LineStyle, tail float64, s *pdtarget.Style) *pdtarget.PathDescriptor {
	if !style.Known() {
		style = pdtarget.LineSolid
	}
	pc := svg.NewPathContext()
	pc.StartAt(p1)
	if style == pdtarget.LineZigzag {
		zigzag(pc, p1, p2, s.ZigzagStep, s.ZigzagAmplitude, tail)
	} else {
		pc.L(p2)
	}
	return &pdtarget.PathDescriptor{
		Style:    style,
		Commands: pc.Commands,
	}
}

// zigzag appends a sawtooth from a to b onto pc, whose pen must already be at a.
// The segment is cut into floor(length/step) steps; every interior step point is
// pushed sideways by amplitude times the step vector, alternating sides, while the
// final step lands exactly on the target. With tail > 0 the last tail units
// before b are drawn straight.
func zigzag(pc *svg.PathContext, a, b *geo.Point, step, amplitude, tail float64) {
	target := b
	tailed := false
	if tail > 0 {
		total := geo.Distance(a, b)
		if total > tail {
			target = a.Interpolate(b, (total-tail)/total)
			tailed = true
		}
	}

	steps := int(math.Floor(geo.Distance(a, target) / step))
	if steps <= 0 {
		pc.L(target)
	} else {
		stride := a.VectorTo(target).Scale(1 / float64(steps))
		nx, ny := geo.Perpendicular(stride.X, stride.Y, amplitude)
		offset := geo.NewVector(nx, ny)
		for j := 1; j <= steps; j++ {
			if j == steps {
				pc.L(target)
				continue
			}
			side := -1.
			if j%2 == 0 {
				side = 1
			}
			pc.L(a.AddVector(stride.Scale(float64(j))).AddVector(offset.Scale(side)))
		}
	}

	if tailed {
		pc.L(b)
	}
}

// BuildElementPath builds one descriptor per segment of a polyline.
// Segment i uses segmentStyles[i] when set and defaultStyle otherwise.
// With an arrow end the last segment stops short of the final point so the
// stroke stays under the arrowhead, and a zigzag last segment ends in a straight stub.
func BuildElementPath(points []*geo.Point, segmentStyles []pdtarget.LineStyle, defaultStyle pdtarget.LineStyle, endType pdtarget.EndType, strokeWidth float64, s *pdtarget.Style) []*pdtarget.PathDescriptor {
	if len(points) < 2 {
		return nil
	}
	s = styleOrDefault(s)
	el := &pdtarget.Element{
		Style:         defaultStyle,
		SegmentStyles: segmentStyles,
	}

	last := len(points) - 2
	paths := make([]*pdtarget.PathDescriptor, 0, len(points)-1)
	for i := 0; i <= last; i++ {
		p1, p2 := points[i], points[i+1]
		tail := 0.
		if i == last && endType == pdtarget.EndArrow {
			p2 = ShortenedEnd(p1, p2, s.ArrowShortening(strokeWidth))
			tail = s.ZigzagTail
		}
		paths = append(paths, buildSegment(p1, p2, el.SegmentStyle(i), tail, s))
	}
	return paths
}

// ShortenedEnd returns the point by units before b on the segment a -> b.
// A segment shorter than by collapses onto a rather than reversing direction.
func ShortenedEnd(a, b *geo.Point, by float64) *geo.Point {
	if by <= 0 || a.Equals(b) {
		return b.Copy()
	}
	l := geo.Distance(a, b)
	if by >= l {
		return a.Copy()
	}
	return a.Interpolate(b, (l-by)/l)
}
