package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
)

// Attrs is the attribute mapping an entity is constructed from, as decoded
// from a schema document.
type Attrs map[string]any

// valueKind is the shape a field value must have.
type valueKind uint8

const (
	kindString valueKind = iota
	kindBool
	kindCount
	kindNumber
	kindRef
	kindList
)

// fieldSpec declares one field of an entity.
type fieldSpec struct {
	name     string
	kind     valueKind
	optional bool
}

func required(name string, kind valueKind) fieldSpec {
	return fieldSpec{name: name, kind: kind}
}

func optional(name string, kind valueKind) fieldSpec {
	return fieldSpec{name: name, kind: kind, optional: true}
}

// fields holds the bound values of one entity. Values have already been
// converted to the Go type their spec declares.
type fields struct {
	values map[string]any
}

// bind checks attrs against specs and converts every supplied value.
// Unknown, missing and malformed fields are all collected and returned
// together as a *FieldError.
func bind(kind string, attrs Attrs, specs []fieldSpec) (*fields, error) {
	ferr := &FieldError{Kind: kind}
	if name, ok := attrs["name"].(string); ok {
		ferr.Name = name
	}
	declared := make(map[string]fieldSpec, len(specs))
	for _, s := range specs {
		declared[s.name] = s
	}
	for k := range attrs {
		if _, ok := declared[k]; !ok {
			ferr.Unexpected = append(ferr.Unexpected, k)
		}
	}
	f := &fields{values: make(map[string]any, len(specs))}
	for _, s := range specs {
		raw, ok := attrs[s.name]
		if !ok || raw == nil {
			if !s.optional {
				ferr.Missing = append(ferr.Missing, s.name)
			}
			continue
		}
		v, err := convert(s.kind, raw)
		if err != nil {
			ferr.Invalid = append(ferr.Invalid, fmt.Sprintf("field %s: %v", s.name, err))
			continue
		}
		f.values[s.name] = v
	}
	sort.Strings(ferr.Unexpected)
	if !ferr.empty() {
		return nil, ferr
	}
	return f, nil
}

func convert(kind valueKind, raw any) (any, error) {
	switch kind {
	case kindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return s, nil
	case kindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return b, nil
	case kindCount:
		return toInt(raw)
	case kindNumber:
		return toNumberText(raw)
	case kindRef:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return ParseRefType(s)
	case kindList:
		return toAttrsList(raw)
	}
	return nil, fmt.Errorf("unsupported field kind %d", kind)
}

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("expected integer, got %v", v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %s", v)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", raw)
}

// toNumberText keeps a constant value in its textual form, so that "1.0"
// stays distinguishable from "1".
func toNumberText(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("expected number or string, got %T", raw)
}

func toAttrsList(raw any) ([]Attrs, error) {
	switch v := raw.(type) {
	case []Attrs:
		return v, nil
	case []map[string]any:
		out := make([]Attrs, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	case []any:
		out := make([]Attrs, 0, len(v))
		for i, e := range v {
			switch m := e.(type) {
			case map[string]any:
				out = append(out, m)
			case Attrs:
				out = append(out, m)
			default:
				return nil, fmt.Errorf("element %d: expected object, got %T", i, e)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected list, got %T", raw)
}

func (f *fields) str(name string) string {
	s, _ := f.values[name].(string)
	return s
}

func (f *fields) flag(name string) bool {
	b, _ := f.values[name].(bool)
	return b
}

func (f *fields) count(name string) (int, bool) {
	n, ok := f.values[name].(int)
	return n, ok
}

func (f *fields) ref(name string) RefType {
	r, _ := f.values[name].(RefType)
	return r
}

func (f *fields) list(name string) []Attrs {
	l, _ := f.values[name].([]Attrs)
	return l
}

func (f *fields) has(name string) bool {
	_, ok := f.values[name]
	return ok
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validName checks that name can be used as an identifier in every target.
func validName(kind, name string) error {
	if !identRe.MatchString(name) {
		return NewValidationError(kind, name, fmt.Sprintf("%q is not a valid identifier", name), nil)
	}
	return nil
}

// uniqueNames reports the first name that appears twice.
func uniqueNames(kind, owner, what string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return NewValidationError(kind, owner, fmt.Sprintf("%s %q redeclared", what, n), nil)
		}
		seen[n] = struct{}{}
	}
	return nil
}
