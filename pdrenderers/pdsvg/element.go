package pdsvg

import (
	"fmt"
	"math"
	"strings"

	"github.com/coachboard/playdiagram/lib/svg"
)

// unset marks a numeric attribute that should not be written.
const unset = math.MaxFloat64

// element builds one SVG tag. Numeric attributes left at unset and empty
// string attributes are omitted.
type element struct {
	tag string

	X      float64
	Y      float64
	X1     float64
	Y1     float64
	X2     float64
	Y2     float64
	Cx     float64
	Cy     float64
	R      float64
	Rx     float64
	Width  float64
	Height float64

	D       string
	Points  string
	Href    string
	DataID  string
	ViewBox string

	Fill            string
	Stroke          string
	StrokeWidth     float64
	StrokeLinecap   string
	StrokeLinejoin  string
	StrokeDasharray string

	FontSize   float64
	FontWeight string
	Style      string
	Attributes string

	// Content is written verbatim between the tags; escape text before setting it.
	Content string
}

func newElement(tag string) *element {
	return &element{
		tag:         tag,
		X:           unset,
		Y:           unset,
		X1:          unset,
		Y1:          unset,
		X2:          unset,
		Y2:          unset,
		Cx:          unset,
		Cy:          unset,
		R:           unset,
		Rx:          unset,
		Width:       unset,
		Height:      unset,
		StrokeWidth: unset,
		FontSize:    unset,
	}
}

func num(f float64) string {
	return fmt.Sprint(math.Round(f*10000) / 10000)
}

func (el *element) render() string {
	var b strings.Builder
	b.WriteString("<" + el.tag)

	attr := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, ` %s="%s"`, name, svg.EscapeText(value))
		}
	}
	numAttr := func(name string, value float64) {
		if value != unset {
			fmt.Fprintf(&b, ` %s="%s"`, name, num(value))
		}
	}

	attr("data-id", el.DataID)
	attr("href", el.Href)
	attr("viewBox", el.ViewBox)
	numAttr("x", el.X)
	numAttr("y", el.Y)
	numAttr("x1", el.X1)
	numAttr("y1", el.Y1)
	numAttr("x2", el.X2)
	numAttr("y2", el.Y2)
	numAttr("cx", el.Cx)
	numAttr("cy", el.Cy)
	numAttr("r", el.R)
	numAttr("rx", el.Rx)
	numAttr("width", el.Width)
	numAttr("height", el.Height)
	attr("d", el.D)
	attr("points", el.Points)

	attr("fill", el.Fill)
	attr("stroke", el.Stroke)
	numAttr("stroke-width", el.StrokeWidth)
	attr("stroke-linecap", el.StrokeLinecap)
	attr("stroke-linejoin", el.StrokeLinejoin)
	attr("stroke-dasharray", el.StrokeDasharray)

	numAttr("font-size", el.FontSize)
	attr("font-weight", el.FontWeight)
	attr("style", el.Style)
	if el.Attributes != "" {
		b.WriteString(" " + el.Attributes)
	}

	if el.Content != "" {
		fmt.Fprintf(&b, ">%s</%s>", el.Content, el.tag)
		return b.String()
	}
	b.WriteString(" />")
	return b.String()
}
