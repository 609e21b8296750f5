package pdshape

import (
	"github.com/coachboard/playdiagram/lib/color"
	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/lib/svg"
	"github.com/coachboard/playdiagram/pdtarget"
)

// lock is a padlock: an arched shackle over a rounded body with a keyhole.
func lock(anchor *geo.Point, c string, s *pdtarget.Style) *pdtarget.Node {
	size := s.ShapeSize
	bodyWidth := size * 1.2
	bodyHeight := size * 0.9
	shackleWidth := size * 0.6
	shackleHeight := size * 0.5

	top := anchor.Y - bodyHeight/2
	pc := svg.NewPathContext()
	pc.StartAt(geo.NewPoint(anchor.X-shackleWidth/2, top))
	pc.A(shackleWidth/2, shackleHeight, 0, false, true, geo.NewPoint(anchor.X+shackleWidth/2, top))

	shackle := &pdtarget.Node{
		Kind:          pdtarget.NodePath,
		Path:          &pdtarget.PathDescriptor{Style: pdtarget.LineSolid, Commands: pc.Commands},
		Fill:          color.None,
		Stroke:        c,
		StrokeWidth:   s.LockStroke,
		StrokeLinecap: pdtarget.LinecapRound,
	}
	// the body overlaps the shackle feet by a couple of units
	body := &pdtarget.Node{
		Kind:   pdtarget.NodeRect,
		At:     geo.NewPoint(anchor.X-bodyWidth/2, top+2),
		Width:  bodyWidth,
		Height: bodyHeight,
		Rx:     s.LockCorner,
		Fill:   c,
	}

	ink := color.Contrasting(c)
	r := s.KeyholeRadius
	hole := &pdtarget.Node{
		Kind: pdtarget.NodeCircle,
		At:   anchor.Copy(),
		R:    r,
		Fill: ink,
	}
	slot := &pdtarget.Node{
		Kind:   pdtarget.NodeRect,
		At:     geo.NewPoint(anchor.X-r/2, anchor.Y),
		Width:  r,
		Height: r * 2,
		Fill:   ink,
	}
	return pdtarget.NewGroup("", shackle, body, hole, slot)
}
