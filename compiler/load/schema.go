// Package load reads API description documents from disk and builds the
// validated schema model from them.
package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Format is the encoding of a document.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf returns the document format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("load: unsupported document extension %q", filepath.Ext(path))
}

// File reads and builds the document at path.
func File(path string) (*schema.API, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	api, err := Bytes(buf, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return api, nil
}

// Files loads every document in paths. A failing document does not stop the
// others from loading: the successfully built documents are returned along
// with the joined errors of the rest.
func Files(paths ...string) ([]*schema.API, error) {
	var (
		apis []*schema.API
		errs []error
	)
	for _, p := range paths {
		api, err := File(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		apis = append(apis, api)
	}
	return apis, errors.Join(errs...)
}

// Bytes decodes buf in the given format and builds the document.
func Bytes(buf []byte, format Format) (*schema.API, error) {
	attrs, err := Attrs(buf, format)
	if err != nil {
		return nil, err
	}
	return schema.NewAPI(attrs)
}

// Attrs decodes buf into the attribute map of the document root. Numbers of
// both formats are kept as json.Number so constant values retain their text.
func Attrs(buf []byte, format Format) (schema.Attrs, error) {
	var attrs map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		if err := dec.Decode(&attrs); err != nil {
			return nil, fmt.Errorf("load: decode json: %w", err)
		}
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(buf, &doc); err != nil {
			return nil, fmt.Errorf("load: decode yaml: %w", err)
		}
		v, err := yamlValue(&doc)
		if err != nil {
			return nil, fmt.Errorf("load: decode yaml: %w", err)
		}
		if v != nil {
			m, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("load: decode yaml: document root is %T, not a mapping", v)
			}
			attrs = m
		}
	default:
		return nil, fmt.Errorf("load: unsupported format %q", format)
	}
	if attrs == nil {
		return nil, errors.New("load: empty document")
	}
	return attrs, nil
}

// yamlValue converts n into the generic values the JSON decoder produces.
// Numeric scalars become json.Number holding the source text.
func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Content[i].Line, err)
			}
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		return m, nil
	case yaml.SequenceNode:
		list := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float":
			return json.Number(n.Value), nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
}
