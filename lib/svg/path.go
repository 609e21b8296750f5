package svg

import (
	"fmt"
	"math"
	"strings"

	"github.com/coachboard/playdiagram/lib/geo"
)

const (
	OpMove  = "M"
	OpLine  = "L"
	OpArc   = "A"
	OpClose = "Z"
)

// Command is one path instruction with absolute coordinates.
// For M and L, Args is [x, y]. For A, Args is [rx, ry, rotation, largeArc, sweep, x, y].
type Command struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

// EndPoint returns where the pen lands after the command.
func (cmd Command) EndPoint() (*geo.Point, bool) {
	if cmd.Op == OpClose || len(cmd.Args) < 2 {
		return nil, false
	}
	n := len(cmd.Args)
	return geo.NewPoint(cmd.Args[n-2], cmd.Args[n-1]), true
}

type PathContext struct {
	Commands []Command
	Start    *geo.Point
	Current  *geo.Point
}

func chopPrecision(f float64) float64 {
	return math.Round(f*10000) / 10000
}

func NewPathContext() *PathContext {
	return &PathContext{}
}

func (c *PathContext) StartAt(p *geo.Point) {
	c.Start = p.Copy()
	c.Commands = append(c.Commands, Command{Op: OpMove, Args: []float64{p.X, p.Y}})
	c.Current = p.Copy()
}

func (c *PathContext) L(p *geo.Point) {
	c.Commands = append(c.Commands, Command{Op: OpLine, Args: []float64{p.X, p.Y}})
	c.Current = p.Copy()
}

func (c *PathContext) A(rx, ry, rotation float64, largeArc, sweep bool, p *geo.Point) {
	c.Commands = append(c.Commands, Command{
		Op:   OpArc,
		Args: []float64{rx, ry, rotation, flag(largeArc), flag(sweep), p.X, p.Y},
	})
	c.Current = p.Copy()
}

func (c *PathContext) Z() {
	c.Commands = append(c.Commands, Command{Op: OpClose})
	if c.Start != nil {
		c.Current = c.Start.Copy()
	}
}

func (c *PathContext) PathData() string {
	return PathData(c.Commands)
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// PathData formats commands as an SVG d attribute, e.g. "M 0,0 L 50,0".
func PathData(cmds []Command) string {
	parts := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		switch cmd.Op {
		case OpMove, OpLine:
			parts = append(parts, fmt.Sprintf("%s %v,%v", cmd.Op, chopPrecision(cmd.Args[0]), chopPrecision(cmd.Args[1])))
		case OpArc:
			a := cmd.Args
			parts = append(parts, fmt.Sprintf("A %v %v %v %v %v %v %v",
				chopPrecision(a[0]), chopPrecision(a[1]), a[2], a[3], a[4],
				chopPrecision(a[5]), chopPrecision(a[6]),
			))
		case OpClose:
			parts = append(parts, OpClose)
		}
	}
	return strings.Join(parts, " ")
}

// Points formats vertices as an SVG points attribute.
func Points(ps []*geo.Point) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, fmt.Sprintf("%v,%v", chopPrecision(p.X), chopPrecision(p.Y)))
	}
	return strings.Join(parts, " ")
}
