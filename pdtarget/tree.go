package pdtarget

import (
	"github.com/coachboard/playdiagram/lib/geo"
	"github.com/coachboard/playdiagram/lib/svg"
)

// PathDescriptor is a drawable path plus the line style it was built for.
// Dashing is left to the backend: a dashed descriptor has the same commands as a solid one.
type PathDescriptor struct {
	Style    LineStyle     `json:"style"`
	Commands []svg.Command `json:"commands"`
}

func (pd *PathDescriptor) Data() string {
	return svg.PathData(pd.Commands)
}

// Vertices lists the pen positions in order, one per command that moves the pen.
func (pd *PathDescriptor) Vertices() []*geo.Point {
	var ps []*geo.Point
	for _, cmd := range pd.Commands {
		if p, ok := cmd.EndPoint(); ok {
			ps = append(ps, p)
		}
	}
	return ps
}

type NodeKind string

const (
	NodeGroup   NodeKind = "group"
	NodePath    NodeKind = "path"
	NodePolygon NodeKind = "polygon"
	NodeLine    NodeKind = "line"
	NodeCircle  NodeKind = "circle"
	NodeRect    NodeKind = "rect"
	NodeText    NodeKind = "text"
)

// Node is one resolved drawing instruction. Only the fields relevant to Kind are set.
type Node struct {
	Kind NodeKind  `json:"kind"`
	ID   ElementID `json:"id,omitempty"`

	Path   *PathDescriptor `json:"path,omitempty"`
	Points []*geo.Point    `json:"points,omitempty"`

	// line endpoints
	From *geo.Point `json:"from,omitempty"`
	To   *geo.Point `json:"to,omitempty"`

	// circle center, rect top-left and text anchor
	At     *geo.Point `json:"at,omitempty"`
	R      float64    `json:"r,omitempty"`
	Width  float64    `json:"width,omitempty"`
	Height float64    `json:"height,omitempty"`
	Rx     float64    `json:"rx,omitempty"`

	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`

	Fill           string  `json:"fill,omitempty"`
	Stroke         string  `json:"stroke,omitempty"`
	StrokeWidth    float64 `json:"strokeWidth,omitempty"`
	StrokeLinecap  string  `json:"strokeLinecap,omitempty"`
	StrokeLinejoin string  `json:"strokeLinejoin,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

const (
	LinecapRound  = "round"
	LinejoinRound = "round"
	WeightBold    = "bold"
)

func NewGroup(id ElementID, children ...*Node) *Node {
	return &Node{Kind: NodeGroup, ID: id, Children: children}
}

// Walk visits n and its descendants depth first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// SkippedElement records an element the composer could not render.
type SkippedElement struct {
	Index  int       `json:"index"`
	ID     ElementID `json:"id,omitempty"`
	Reason string    `json:"reason"`
}

// RenderTree is the full output of one render call.
type RenderTree struct {
	Style    *Style           `json:"style"`
	Viewport *geo.Box         `json:"viewport"`
	Nodes    []*Node          `json:"nodes"`
	Skipped  []SkippedElement `json:"skipped,omitempty"`
}
