// Package pdquery selects or reshapes diagram elements with jq expressions.
//
// The expression receives the element list as a JSON array. Every output must
// be an element object or an array of element objects; arrays are flattened.
//
//	.[] | select(.type == "poly")
//	map(select(.endType == "arrow") | .color = "#ef4444")
package pdquery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/coachboard/playdiagram/lib/syncmap"
	"github.com/coachboard/playdiagram/pdtarget"
)

// Selector evaluates jq expressions against element lists.
// Compiled expressions are cached; a Selector is safe for concurrent use.
type Selector struct {
	cache syncmap.SyncMap[string, *gojq.Code]
}

func NewSelector() *Selector {
	return &Selector{
		cache: syncmap.New[string, *gojq.Code](),
	}
}

var defaultSelector = NewSelector()

// Select runs expr with a process-wide Selector.
func Select(ctx context.Context, expr string, elements []*pdtarget.Element) ([]*pdtarget.Element, error) {
	return defaultSelector.Select(ctx, expr, elements)
}

// Select returns the elements expr produces. The input elements are not modified;
// the result is always freshly decoded.
func (s *Selector) Select(ctx context.Context, expr string, elements []*pdtarget.Element) ([]*pdtarget.Element, error) {
	if expr == "" {
		return nil, errors.New("empty jq expression")
	}
	code, err := s.getOrCompile(expr)
	if err != nil {
		return nil, err
	}

	input, err := toJQValue(elements)
	if err != nil {
		return nil, fmt.Errorf("encode elements: %w", err)
	}

	var out []*pdtarget.Element
	iter := code.RunWithContext(ctx, input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("jq evaluation failed for %q: %w", expr, err)
		}
		els, err := fromJQValue(v)
		if err != nil {
			return nil, fmt.Errorf("jq output of %q: %w", expr, err)
		}
		out = append(out, els...)
	}
	return out, nil
}

// getOrCompile may compile the same expression twice under contention; the
// last one stored wins and both are equivalent.
func (s *Selector) getOrCompile(expr string) (*gojq.Code, error) {
	if code, ok := s.cache.Lookup(expr); ok {
		return code, nil
	}

	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("jq parse error in %q: %w", expr, err)
	}
	code, err := gojq.Compile(query,
		// no $ENV access from user expressions
		gojq.WithEnvironLoader(func() []string { return nil }),
	)
	if err != nil {
		return nil, fmt.Errorf("jq compile error in %q: %w", expr, err)
	}

	s.cache.Set(expr, code)
	return code, nil
}

// toJQValue turns elements into the plain maps, slices and float64s gojq operates on.
func toJQValue(elements []*pdtarget.Element) (any, error) {
	if elements == nil {
		elements = []*pdtarget.Element{}
	}
	b, err := json.Marshal(elements)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func fromJQValue(v any) ([]*pdtarget.Element, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		el, err := decodeElement(v)
		if err != nil {
			return nil, err
		}
		return []*pdtarget.Element{el}, nil
	case []any:
		els := make([]*pdtarget.Element, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("array item %d is %T, not an element object", i, item)
			}
			el, err := decodeElement(m)
			if err != nil {
				return nil, fmt.Errorf("array item %d: %w", i, err)
			}
			els = append(els, el)
		}
		return els, nil
	}
	return nil, fmt.Errorf("got %T, not an element object", v)
}

func decodeElement(m map[string]any) (*pdtarget.Element, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	el := &pdtarget.Element{}
	if err := json.Unmarshal(b, el); err != nil {
		return nil, err
	}
	return el, nil
}
