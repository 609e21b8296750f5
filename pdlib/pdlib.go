// Package pdlib runs the whole play diagram pipeline in one call:
// decode, lint, select, resolve the palette, compose and render.
package pdlib

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cdr.dev/slog"
	"oss.terrastruct.com/xdefer"

	"github.com/coachboard/playdiagram/lib/log"
	"github.com/coachboard/playdiagram/pdpalette"
	"github.com/coachboard/playdiagram/pdquery"
	"github.com/coachboard/playdiagram/pdrenderers/pdsvg"
	"github.com/coachboard/playdiagram/pdscene"
	"github.com/coachboard/playdiagram/pdtarget"
	"github.com/coachboard/playdiagram/pdvalidate"
)

type CompileOptions struct {
	Render *pdtarget.RenderOptions
	// Select is an optional jq expression that picks or reshapes elements before rendering.
	Select  string
	Palette *pdpalette.Config
	// Strict turns schema lint issues into an error instead of warnings.
	Strict bool
	// Linter defaults to a shared linter for the element schema.
	Linter *pdvalidate.Linter
}

// Diagram is everything one compile produced.
type Diagram struct {
	// Elements are the elements that were composed, after selection and palette resolution.
	Elements []*pdtarget.Element
	Tree     *pdtarget.RenderTree
	Issues   []pdvalidate.Issue
}

// LintError is returned by strict compiles of documents with schema issues.
type LintError struct {
	Issues []pdvalidate.Issue
}

func (le LintError) Error() string {
	lines := make([]string, 0, len(le.Issues))
	for _, is := range le.Issues {
		lines = append(lines, is.String())
	}
	return fmt.Sprintf("%d schema issue(s):\n%s", len(le.Issues), strings.Join(lines, "\n"))
}

var (
	sharedLinter     *pdvalidate.Linter
	sharedLinterErr  error
	sharedLinterOnce sync.Once
)

func defaultLinter() (*pdvalidate.Linter, error) {
	sharedLinterOnce.Do(func() {
		sharedLinter, sharedLinterErr = pdvalidate.NewLinter()
	})
	return sharedLinter, sharedLinterErr
}

// Decode parses a stored diagram: either a JSON array of elements or an object
// holding them under "elements". Records are decoded one by one; a record that
// does not decode is kept with DecodeErr set so the composer skips just that
// record. Only a document whose shape is wrong is an error.
func Decode(raw []byte) (_ []*pdtarget.Element, err error) {
	defer xdefer.Errorf(&err, "failed to decode diagram")

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty document")
	}

	var records []json.RawMessage
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, err
		}
	case '{':
		var doc struct {
			Elements *[]json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		if doc.Elements == nil {
			return nil, errors.New(`document object has no "elements" array`)
		}
		records = *doc.Elements
	default:
		return nil, fmt.Errorf("document must be a JSON array or object, found %q", raw[0])
	}

	els := make([]*pdtarget.Element, 0, len(records))
	for _, rec := range records {
		if bytes.Equal(bytes.TrimSpace(rec), []byte("null")) {
			els = append(els, nil)
			continue
		}
		els = append(els, pdtarget.DecodeElement(rec))
	}
	return els, nil
}

func Compile(ctx context.Context, raw []byte, opts *CompileOptions) (_ *Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to compile diagram")
	if opts == nil {
		opts = &CompileOptions{}
	}

	linter := opts.Linter
	if linter == nil {
		linter, err = defaultLinter()
		if err != nil {
			return nil, err
		}
	}
	issues, err := linter.Lint(raw)
	if err != nil {
		return nil, err
	}
	if opts.Strict && len(issues) > 0 {
		return nil, LintError{Issues: issues}
	}
	for _, is := range issues {
		log.Warn(ctx, "schema issue", slog.F("index", is.Index), slog.F("path", is.Path), slog.F("message", is.Message))
	}

	els, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if opts.Select != "" {
		before := len(els)
		els, err = pdquery.Select(ctx, opts.Select, els)
		if err != nil {
			return nil, err
		}
		log.Debug(ctx, "selected elements", slog.F("expr", opts.Select), slog.F("before", before), slog.F("after", len(els)))
	}
	els = pdpalette.NewResolver(opts.Palette).Apply(els)

	tree := pdscene.RenderScene(els, opts.Render)
	for _, sk := range tree.Skipped {
		log.Warn(ctx, "skipped element", slog.F("index", sk.Index), slog.F("id", sk.ID), slog.F("reason", sk.Reason))
	}
	return &Diagram{
		Elements: els,
		Tree:     tree,
		Issues:   issues,
	}, nil
}

// Render compiles raw and serializes it to SVG.
func Render(ctx context.Context, raw []byte, opts *CompileOptions, svgOpts *pdsvg.RenderOpts) ([]byte, *Diagram, error) {
	diagram, err := Compile(ctx, raw, opts)
	if err != nil {
		return nil, nil, err
	}
	out, err := pdsvg.Render(diagram.Tree, svgOpts)
	if err != nil {
		return nil, diagram, fmt.Errorf("failed to render svg: %w", err)
	}
	return out, diagram, nil
}
