package compiler

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/benn-herrera/letterboxed-mp/schema"
)

// Format is an encoding of the model snapshot.
type Format string

// Snapshot encodings.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Formats lists the snapshot encodings.
func Formats() []Format { return []Format{FormatJSON, FormatYAML, FormatMsgpack} }

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("apigen: unknown snapshot format %q", s)
}

// Export writes the snapshot of api to w in the given format.
func Export(w io.Writer, api *schema.API, format Format) error {
	snap := api.Snapshot()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(snap)
	}
	return fmt.Errorf("apigen: unknown snapshot format %q", format)
}
