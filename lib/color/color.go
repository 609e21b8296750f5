package color

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

const (
	White = "white"
	Black = "#000000"

	// Special
	Empty = ""
	None  = "none"
)

// Valid reports whether colorString parses as a CSS color.
func Valid(colorString string) bool {
	if colorString == Empty {
		return false
	}
	_, err := csscolorparser.Parse(colorString)
	return err == nil
}

// Or returns colorString when it is a valid CSS color and fallback otherwise.
func Or(colorString, fallback string) string {
	if Valid(colorString) {
		return colorString
	}
	return fallback
}

// Normalize rewrites any CSS color as lowercase #rrggbb so user supplied
// colors like "Red" or "rgb(255 0 0)" render the same everywhere.
// Alpha is dropped.
func Normalize(colorString string) (string, bool) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", false
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex(), true
}

func LuminanceCategory(colorString string) (string, error) {
	l, err := Luminance(colorString)
	if err != nil {
		return "", err
	}

	switch {
	case l >= .88:
		return "bright", nil
	case l >= .55:
		return "normal", nil
	case l >= .30:
		return "dark", nil
	default:
		return "darker", nil
	}
}

func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}

	l := float64(
		float64(0.299)*float64(c.R) +
			float64(0.587)*float64(c.G) +
			float64(0.114)*float64(c.B),
	)
	return l, nil
}

// Contrasting picks the ink that reads on top of colorString: white on
// anything but bright fills. Unparseable colors get white.
func Contrasting(colorString string) string {
	cat, err := LuminanceCategory(colorString)
	if err != nil || cat != "bright" {
		return White
	}
	return Black
}
