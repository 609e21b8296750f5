// Package pdpalette resolves the label and color a player is drawn with from a
// team's position setup: custom colors, renamed positions and card abbreviations.
package pdpalette

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/coachboard/playdiagram/lib/color"
	"github.com/coachboard/playdiagram/pdtarget"
)

// Fallback is used for a player whose position has no color anywhere.
const Fallback = "#3b82f6"

const lineman = "#64748b"

// Defaults are the built-in position colors.
var Defaults = map[string]string{
	"QB": "#1e3a5f",
	"RB": "#3b82f6",
	"FB": "#0891b2",
	"WR": "#a855f7",
	"TE": "#f97316",
	"LT": lineman,
	"LG": lineman,
	"C":  lineman,
	"RG": lineman,
	"RT": lineman,
	"T":  lineman,
	"G":  lineman,
	"X":  "#a855f7",
	"Y":  "#22c55e",
	"Z":  "#eab308",
	"H":  "#06b6d4",
	"F":  "#f97316",
	"A":  "#f97316",
	"B":  "#3b82f6",
}

// Config is a team's position setup as stored.
type Config struct {
	// Colors are keyed by position display name, or by position key in older setups.
	Colors map[string]string `json:"positionColors"`
	// Names maps a position key to the name it was renamed to.
	Names map[string]string `json:"positionNames"`
	// Abbreviations are the short labels used on wristband cards, keyed by position.
	Abbreviations map[string]string `json:"positionAbbreviations"`
}

// Resolver answers label and color lookups for one Config.
// It is immutable once built and safe for concurrent use.
type Resolver struct {
	colors        map[string]string
	names         map[string]string
	abbreviations map[string]string
	// position keys sorted so that reverse name lookups are deterministic
	keys []string
}

func normalize(s string) string {
	return cases.Upper(language.Und).String(s)
}

// NewResolver builds a Resolver. Keys are matched case-insensitively and
// colors that are not valid CSS colors are dropped. A nil config resolves
// against the built-in defaults only.
func NewResolver(cfg *Config) *Resolver {
	r := &Resolver{
		colors:        map[string]string{},
		names:         map[string]string{},
		abbreviations: map[string]string{},
	}
	if cfg == nil {
		return r
	}
	for k, v := range cfg.Colors {
		if c, ok := color.Normalize(v); ok {
			r.colors[normalize(k)] = c
		}
	}
	for k, v := range cfg.Names {
		if v != "" {
			r.names[normalize(k)] = v
		}
	}
	for k, v := range cfg.Abbreviations {
		if v != "" {
			r.abbreviations[normalize(k)] = v
		}
	}
	r.keys = maps.Keys(r.names)
	slices.Sort(r.keys)
	return r
}

func lookup(m map[string]string, k string) (string, bool) {
	if k == "" {
		return "", false
	}
	v, ok := m[normalize(k)]
	return v, ok
}

// Label is the text drawn for a player. A card abbreviation wins over a
// renamed position, which wins over the stored label.
func (r *Resolver) Label(label, positionKey string) string {
	if v, ok := lookup(r.abbreviations, positionKey); ok {
		return v
	}
	if v, ok := lookup(r.abbreviations, label); ok {
		return v
	}
	if v, ok := lookup(r.names, positionKey); ok {
		return v
	}
	if v, ok := lookup(r.names, label); ok {
		return v
	}
	return label
}

// Color is the color a player is drawn with. Team colors are tried first by
// display name, key and label, then the built-in defaults, then the stored color.
func (r *Resolver) Color(label, stored, positionKey string) string {
	displayName := label
	if positionKey != "" {
		displayName = positionKey
		if v, ok := lookup(r.names, positionKey); ok {
			displayName = v
		}
	}

	for _, k := range []string{displayName, positionKey, label} {
		if v, ok := lookup(r.colors, k); ok {
			return v
		}
	}
	if k := r.renamedFrom(label); k != "" {
		if v, ok := r.colors[k]; ok {
			return v
		}
	}
	for _, k := range []string{positionKey, displayName, label} {
		if v, ok := lookup(Defaults, k); ok {
			return v
		}
	}
	if color.Valid(stored) {
		return stored
	}
	return Fallback
}

// renamedFrom finds the position key that was renamed to name.
func (r *Resolver) renamedFrom(name string) string {
	if name == "" {
		return ""
	}
	for _, k := range r.keys {
		if r.names[k] == name {
			return k
		}
	}
	return ""
}

// Apply returns elements with every player's label and color resolved.
// Players are copied; the input elements are left untouched.
func (r *Resolver) Apply(elements []*pdtarget.Element) []*pdtarget.Element {
	out := make([]*pdtarget.Element, len(elements))
	for i, el := range elements {
		if el == nil || el.Type != pdtarget.ElementPlayer {
			out[i] = el
			continue
		}
		c := el.Copy()
		c.Label = r.Label(el.Label, el.PositionKey)
		c.Color = r.Color(c.Label, el.Color, el.PositionKey)
		out[i] = c
	}
	return out
}
