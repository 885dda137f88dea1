package schema

import "fmt"

var aliasFields = []fieldSpec{
	required("name", kindString),
	required("base_type", kindString),
	optional("ref_type", kindRef),
	optional("array_count", kindCount),
	optional("is_list", kindBool),
	optional("is_const", kindBool),
}

// Alias names another type, optionally qualified by reference or
// cardinality. Classification follows the alias chain to its final target.
type Alias struct {
	reg        *Registry
	name       string
	baseType   string
	ref        RefType
	arrayCount int
	isArray    bool
	isList     bool
	isConst    bool

	target Type
}

// NewAlias builds an alias, registers it in reg and validates it. The base
// type must already be registered.
func NewAlias(reg *Registry, attrs Attrs) (*Alias, error) {
	a, err := bindAlias(reg, attrs)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func bindAlias(reg *Registry, attrs Attrs) (*Alias, error) {
	f, err := bind(kindAlias, attrs, aliasFields)
	if err != nil {
		return nil, err
	}
	a := &Alias{
		reg:      reg,
		name:     f.str("name"),
		baseType: f.str("base_type"),
		ref:      f.ref("ref_type"),
		isList:   f.flag("is_list"),
		isConst:  f.flag("is_const"),
	}
	a.arrayCount, a.isArray = f.count("array_count")
	return a, nil
}

func (*Alias) isType() {}

// Name returns the alias name.
func (a *Alias) Name() string { return a.name }

// Kind returns KindAlias.
func (*Alias) Kind() Kind { return KindAlias }

// BaseTypeName returns the name of the aliased type.
func (a *Alias) BaseTypeName() string { return a.baseType }

// Base returns the immediately aliased type, which may itself be an alias.
func (a *Alias) Base() Type {
	t, err := a.reg.Lookup(a.baseType)
	if err != nil {
		return nil
	}
	return t
}

// Resolved follows base types through successive aliases and returns the
// first non-alias type. It returns nil if the chain is broken or cyclic.
func (a *Alias) Resolved() Type {
	if a.target != nil {
		return a.target
	}
	t, err := a.reg.Resolve(a.name)
	if err != nil {
		return nil
	}
	return t
}

func (a *Alias) IsInt() bool       { return is(a.Resolved(), Type.IsInt) }
func (a *Alias) IsFloat() bool     { return is(a.Resolved(), Type.IsFloat) }
func (a *Alias) IsBool() bool      { return is(a.Resolved(), Type.IsBool) }
func (a *Alias) IsString() bool    { return is(a.Resolved(), Type.IsString) }
func (a *Alias) IsVoid() bool      { return is(a.Resolved(), Type.IsVoid) }
func (a *Alias) IsPrimitive() bool { return is(a.Resolved(), Type.IsPrimitive) }
func (a *Alias) IsNumber() bool    { return is(a.Resolved(), Type.IsNumber) }

// RefType returns the reference qualifier added by the alias.
func (a *Alias) RefType() RefType { return a.ref }

// ArrayCount returns the fixed array count, 0 unless IsArray.
func (a *Alias) ArrayCount() int { return a.arrayCount }

// IsArray reports whether the alias names a fixed-size array.
func (a *Alias) IsArray() bool { return a.isArray }

// IsList reports whether the alias names a list.
func (a *Alias) IsList() bool { return a.isList }

// IsConst reports whether the alias is const qualified.
func (a *Alias) IsConst() bool { return a.isConst }

func (a *Alias) String() string {
	return fmt.Sprintf("Alias %s(%s)", a.name, a.baseType)
}

func (a *Alias) validate() error {
	if err := validName(kindAlias, a.name); err != nil {
		return err
	}
	t, err := a.reg.Resolve(a.name)
	if err != nil {
		return NewValidationError(kindAlias, a.name, "unresolved base type "+a.baseType, err)
	}
	if t.IsVoid() {
		return NewValidationError(kindAlias, a.name, "can't alias void type", nil)
	}
	if a.isArray && a.arrayCount <= 0 {
		return NewValidationError(kindAlias, a.name, fmt.Sprintf("array_count must be positive, got %d", a.arrayCount), nil)
	}
	if a.isList && a.isArray {
		return NewValidationError(kindAlias, a.name, "array_count and is_list are mutually exclusive", nil)
	}
	a.target = t
	return nil
}
