// Package pdvalidate lints stored diagram documents against the element schema.
//
// Linting is advisory. The renderer falls back on unknown styles and end types
// and skips elements it cannot draw, so a document with issues still renders.
package pdvalidate

import (
	"bytes"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const elementSchemaURL = "https://playdiagram.dev/schemas/element.json"

// Issue is one schema violation inside one element.
type Issue struct {
	// Index of the element in the document's element list.
	Index int `json:"index"`
	// Path is the JSON pointer of the offending value inside the element.
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("elements[%d]%s: %s", i.Index, i.Path, i.Message)
}

// Linter validates elements against the compiled element schema.
// It is safe for concurrent use.
type Linter struct {
	schema *jsonschema.Schema
}

func NewLinter() (*Linter, error) {
	c := jsonschema.NewCompiler()

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(elementSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal element schema: %w", err)
	}
	if err := c.AddResource(elementSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add element schema resource: %w", err)
	}
	sch, err := c.Compile(elementSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile element schema: %w", err)
	}
	return &Linter{schema: sch}, nil
}

// Lint checks every element of raw independently. raw is either a JSON array of
// elements or an object with an "elements" array. The returned error is only
// for documents that are not JSON or have no element list at all.
func (l *Linter) Lint(raw []byte) ([]Issue, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	elements, err := elementList(doc)
	if err != nil {
		return nil, err
	}

	p := message.NewPrinter(language.English)
	var issues []Issue
	for i, el := range elements {
		if err := l.schema.Validate(el); err != nil {
			issues = append(issues, toIssues(p, i, err)...)
		}
	}
	return issues, nil
}

func elementList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if els, ok := v["elements"].([]any); ok {
			return els, nil
		}
		return nil, fmt.Errorf(`document object has no "elements" array`)
	}
	return nil, fmt.Errorf("document must be an array or an object, got %T", doc)
}

func toIssues(p *message.Printer, index int, err error) []Issue {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Issue{{Index: index, Message: err.Error()}}
	}
	return collect(p, index, verr)
}

// collect walks a ValidationError tree down to its leaves.
func collect(p *message.Printer, index int, verr *jsonschema.ValidationError) []Issue {
	if len(verr.Causes) == 0 {
		path := ""
		if len(verr.InstanceLocation) > 0 {
			path = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []Issue{{
			Index:   index,
			Path:    path,
			Message: verr.ErrorKind.LocalizedString(p),
		}}
	}

	var issues []Issue
	for _, cause := range verr.Causes {
		issues = append(issues, collect(p, index, cause)...)
	}
	return issues
}
