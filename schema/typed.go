package schema

import "fmt"

// Entity kind names used in diagnostics.
const (
	kindConstant  = "constant"
	kindEnumValue = "enum value"
	kindMember    = "member"
	kindParameter = "parameter"
	kindMethod    = "method"
	kindFunction  = "function"
	kindAlias     = "alias"
	kindEnum      = "enum"
	kindStruct    = "struct"
	kindClass     = "class"
	kindAPI       = "api"
)

// typedFields are the fields every typed value declares.
var typedFields = []fieldSpec{
	required("name", kindString),
	required("type", kindString),
	optional("ref_type", kindRef),
	optional("array_count", kindCount),
	optional("is_list", kindBool),
	optional("is_const", kindBool),
}

// Typed is the shape shared by constants, members, parameters, methods and
// functions: a name, a type referenced by name, an optional reference
// qualifier, an array or list cardinality and a const flag.
//
// The type is referenced by name and resolved through the registry, so a
// typed value may name a type that is declared later in the document.
type Typed struct {
	reg        *Registry
	kind       string
	name       string
	typeName   string
	ref        RefType
	arrayCount int
	isArray    bool
	isList     bool
	isConst    bool

	resolved Type
}

func (t *Typed) bindTyped(reg *Registry, kind string, f *fields) {
	t.reg = reg
	t.kind = kind
	t.name = f.str("name")
	t.typeName = f.str("type")
	t.ref = f.ref("ref_type")
	t.arrayCount, t.isArray = f.count("array_count")
	t.isList = f.flag("is_list")
	t.isConst = f.flag("is_const")
}

// Name returns the declared name.
func (t *Typed) Name() string { return t.name }

// TypeName returns the name of the declared type.
func (t *Typed) TypeName() string { return t.typeName }

// Type returns the declared type, which may be an alias. It is nil if the
// name is not registered.
func (t *Typed) Type() Type {
	typ, err := t.reg.Lookup(t.typeName)
	if err != nil {
		return nil
	}
	return typ
}

// Resolved returns the final non-alias type, or nil if it cannot be resolved.
func (t *Typed) Resolved() Type {
	if t.resolved != nil {
		return t.resolved
	}
	r, err := t.reg.Resolve(t.typeName)
	if err != nil {
		return nil
	}
	return r
}

// RefType returns the reference qualifier, RefNone when unset.
func (t *Typed) RefType() RefType { return t.ref }

// ArrayCount returns the fixed array count, 0 unless IsArray.
func (t *Typed) ArrayCount() int { return t.arrayCount }

// IsArray reports whether the value has a fixed array cardinality.
func (t *Typed) IsArray() bool { return t.isArray }

// IsList reports whether the value has list cardinality.
func (t *Typed) IsList() bool { return t.isList }

// IsConst reports whether the value is const qualified.
func (t *Typed) IsConst() bool { return t.isConst }

func (t *Typed) IsInt() bool       { return is(t.Resolved(), Type.IsInt) }
func (t *Typed) IsFloat() bool     { return is(t.Resolved(), Type.IsFloat) }
func (t *Typed) IsBool() bool      { return is(t.Resolved(), Type.IsBool) }
func (t *Typed) IsString() bool    { return is(t.Resolved(), Type.IsString) }
func (t *Typed) IsVoid() bool      { return is(t.Resolved(), Type.IsVoid) }
func (t *Typed) IsPrimitive() bool { return is(t.Resolved(), Type.IsPrimitive) }
func (t *Typed) IsNumber() bool    { return is(t.Resolved(), Type.IsNumber) }

// IsPlain reports whether the value carries no reference qualifier and no
// cardinality modifier.
func (t *Typed) IsPlain() bool {
	return t.ref == RefNone && !t.isArray && !t.isList
}

func is(t Type, pred func(Type) bool) bool {
	return t != nil && pred(t)
}

func (t *Typed) mods() string {
	switch {
	case t.isArray:
		return fmt.Sprintf("[%d]", t.arrayCount)
	case t.isList:
		return "[list]"
	case t.ref != RefNone:
		return "(" + t.ref.String() + "_ref)"
	}
	return ""
}

func (t *Typed) String() string {
	return fmt.Sprintf("%s %s: %s%s", t.kind, t.name, t.typeName, t.mods())
}

func (t *Typed) invalid(msg string, cause error) error {
	return NewValidationError(t.kind, t.name, msg, cause)
}

// validateTyped checks the rules every typed value obeys and caches the
// resolved type.
func (t *Typed) validateTyped() error {
	if err := validName(t.kind, t.name); err != nil {
		return err
	}
	r, err := t.reg.Resolve(t.typeName)
	if err != nil {
		return t.invalid("unresolved type "+t.typeName, err)
	}
	t.resolved = r
	if t.isArray && t.arrayCount <= 0 {
		return t.invalid(fmt.Sprintf("array_count must be positive, got %d", t.arrayCount), nil)
	}
	if t.isList && t.isArray {
		return t.invalid("array_count and is_list are mutually exclusive", nil)
	}
	if r.IsVoid() && (t.isList || t.isArray || t.isConst) {
		return t.invalid("void type can't be const, array, or list", nil)
	}
	return nil
}
