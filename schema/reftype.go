package schema

import "fmt"

// RefType is the reference/ownership qualifier of a typed value.
type RefType uint8

// Reference qualifiers. RefNone means the value is held directly.
const (
	RefNone RefType = iota
	RefRaw
	RefNonOptional
	RefShared
	RefUnique
)

var refNames = [...]string{
	RefNone:        "",
	RefRaw:         "raw",
	RefNonOptional: "non_optional",
	RefShared:      "shared",
	RefUnique:      "unique",
}

var refSymbols = [...]string{
	RefNone:        "",
	RefRaw:         "*",
	RefNonOptional: "&",
	RefShared:      "shared",
	RefUnique:      "unique",
}

// ParseRefType parses the document spelling of a qualifier.
func ParseRefType(s string) (RefType, error) {
	for i, name := range refNames {
		if i > 0 && name == s {
			return RefType(i), nil
		}
	}
	return RefNone, fmt.Errorf("unknown ref_type %q (want raw, non_optional, shared or unique)", s)
}

// String returns the document spelling of r.
func (r RefType) String() string {
	if int(r) < len(refNames) {
		return refNames[r]
	}
	return fmt.Sprintf("RefType(%d)", uint8(r))
}

// Symbol returns the C++ flavored symbol of r: "*", "&", "shared" or "unique".
func (r RefType) Symbol() string {
	if int(r) < len(refSymbols) {
		return refSymbols[r]
	}
	return ""
}

// IsPointerLike reports whether r is a plain pointer or reference, as opposed
// to a smart-pointer ownership qualifier.
func (r RefType) IsPointerLike() bool {
	return r == RefRaw || r == RefNonOptional
}

// IsOwning reports whether r is a shared or unique ownership qualifier.
func (r RefType) IsOwning() bool {
	return r == RefShared || r == RefUnique
}

// MarshalText implements encoding.TextMarshaler.
func (r RefType) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RefType) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*r = RefNone
		return nil
	}
	v, err := ParseRefType(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
