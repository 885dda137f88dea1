package schema

import "fmt"

var enumFields = []fieldSpec{
	required("name", kindString),
	required("members", kindList),
	optional("base_type", kindString),
}

// Enum is a named set of integer values over an integer base type.
type Enum struct {
	classes
	reg      *Registry
	name     string
	baseType string
	members  []*EnumValue
}

// NewEnum builds an enum, registers it in reg and validates it.
func NewEnum(reg *Registry, attrs Attrs) (*Enum, error) {
	e, err := bindEnum(reg, attrs)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(e); err != nil {
		return nil, err
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func bindEnum(reg *Registry, attrs Attrs) (*Enum, error) {
	f, err := bind(kindEnum, attrs, enumFields)
	if err != nil {
		return nil, err
	}
	e := &Enum{reg: reg, name: f.str("name"), baseType: TypeInt32}
	if f.has("base_type") {
		e.baseType = f.str("base_type")
	}
	for _, m := range f.list("members") {
		v, err := bindEnumValue(reg, e.name, m)
		if err != nil {
			return nil, err
		}
		e.members = append(e.members, v)
	}
	return e, nil
}

func (*Enum) isType() {}

// Name returns the enum name.
func (e *Enum) Name() string { return e.name }

// Kind returns KindEnum.
func (*Enum) Kind() Kind { return KindEnum }

// Resolved returns e.
func (e *Enum) Resolved() Type { return e }

// IsInt returns true; enums classify as integers.
func (*Enum) IsInt() bool { return true }

// IsNumber returns true.
func (*Enum) IsNumber() bool { return true }

// BaseTypeName returns the declared base type name.
func (e *Enum) BaseTypeName() string { return e.baseType }

// BaseType returns the resolved base type, nil if it cannot be resolved.
func (e *Enum) BaseType() Type {
	t, err := e.reg.Resolve(e.baseType)
	if err != nil {
		return nil
	}
	return t
}

// Members returns the enum values in declaration order.
func (e *Enum) Members() []*EnumValue { return e.members }

// Member returns the value named name.
func (e *Enum) Member(name string) (*EnumValue, bool) {
	for _, m := range e.members {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

func (e *Enum) String() string {
	return fmt.Sprintf("Enum %s(%s)", e.name, e.baseType)
}

func (e *Enum) validate() error {
	if err := validName(kindEnum, e.name); err != nil {
		return err
	}
	bt, err := e.reg.Resolve(e.baseType)
	if err != nil {
		return NewValidationError(kindEnum, e.name, "unresolved base type "+e.baseType, err)
	}
	if p, ok := AsPrimitive(bt); !ok || !p.IsInt() {
		return NewValidationError(kindEnum, e.name, "base type "+e.baseType+" is not integral", nil)
	}
	names := make([]string, len(e.members))
	for i, m := range e.members {
		if err := m.validate(); err != nil {
			return err
		}
		names[i] = m.name
	}
	return uniqueNames(kindEnum, e.name, "value", names)
}
