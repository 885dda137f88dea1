package schema

import (
	"strconv"
	"strings"
)

var constantFields = append(append([]fieldSpec(nil), typedFields...),
	required("value", kindNumber),
)

var enumValueFields = []fieldSpec{
	required("name", kindString),
	required("value", kindNumber),
}

// Constant is a named numeric value. Its value is kept in the textual form
// it was declared with.
type Constant struct {
	Typed
	value string
}

// NewConstant builds and validates a constant against reg.
func NewConstant(reg *Registry, attrs Attrs) (*Constant, error) {
	c, err := bindConstant(reg, attrs)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func bindConstant(reg *Registry, attrs Attrs) (*Constant, error) {
	f, err := bind(kindConstant, attrs, constantFields)
	if err != nil {
		return nil, err
	}
	c := &Constant{value: f.str("value")}
	c.bindTyped(reg, kindConstant, f)
	return c, nil
}

// Value returns the declared value text.
func (c *Constant) Value() string { return c.value }

// HasFloatValue reports whether the value is written with a fractional part.
func (c *Constant) HasFloatValue() bool { return strings.Contains(c.value, ".") }

// Int returns the value as an integer. It is only meaningful when IsInt and
// not IsUnsigned.
func (c *Constant) Int() int64 {
	n, _ := strconv.ParseInt(c.value, 0, 64)
	return n
}

// Uint returns the value as an unsigned integer. It is only meaningful when
// IsUnsigned.
func (c *Constant) Uint() uint64 {
	n, _ := strconv.ParseUint(c.value, 0, 64)
	return n
}

// IsUnsigned reports whether the constant resolves to an unsigned integer
// primitive, directly or through the base type of its enum.
func (c *Constant) IsUnsigned() bool {
	t := c.Resolved()
	if e, ok := t.(*Enum); ok {
		t = e.BaseType()
	}
	p, ok := AsPrimitive(t)
	return ok && p.IsUnsigned()
}

// Float returns the value as a float.
func (c *Constant) Float() float64 {
	v, _ := strconv.ParseFloat(c.value, 64)
	return v
}

func (c *Constant) String() string {
	return c.Typed.String() + " = " + c.value
}

func (c *Constant) validate() error {
	if err := c.validateTyped(); err != nil {
		return err
	}
	if !c.IsPlain() || !c.IsNumber() {
		return c.invalid("type "+c.typeName+" is not a simple numeric type", nil)
	}
	if c.IsInt() {
		if c.HasFloatValue() {
			return c.invalid("assigns a float value to an int type", nil)
		}
		if c.IsUnsigned() {
			if _, err := strconv.ParseUint(c.value, 0, 64); err != nil {
				return c.invalid("value "+strconv.Quote(c.value)+" is not an unsigned integer", nil)
			}
			return nil
		}
		if _, err := strconv.ParseInt(c.value, 0, 64); err != nil {
			return c.invalid("value "+strconv.Quote(c.value)+" is not an integer", nil)
		}
		return nil
	}
	if _, err := strconv.ParseFloat(c.value, 64); err != nil {
		return c.invalid("value "+strconv.Quote(c.value)+" is not a number", nil)
	}
	return nil
}

// EnumValue is one named member of an Enum. Its type is the enum itself.
type EnumValue struct {
	Constant
}

func bindEnumValue(reg *Registry, enum string, attrs Attrs) (*EnumValue, error) {
	f, err := bind(kindEnumValue, attrs, enumValueFields)
	if err != nil {
		return nil, err
	}
	v := &EnumValue{Constant{value: f.str("value")}}
	v.bindTyped(reg, kindEnumValue, f)
	v.typeName = enum
	return v, nil
}
