package svg

import (
	"bytes"
	"encoding/xml"
)

// FontFamily is the family every diagram label is drawn with.
const FontFamily = "Arial, sans-serif"

func EscapeText(text string) string {
	buf := new(bytes.Buffer)
	_ = xml.EscapeText(buf, []byte(text))
	return buf.String()
}
