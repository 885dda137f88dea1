package schema

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Type.
type Kind uint8

// Type kinds.
const (
	KindPrimitive Kind = iota + 1
	KindAlias
	KindEnum
	KindStruct
	KindClass
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindAlias:
		return "alias"
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Type is a named type held by the Registry. The set of implementations is
// closed: *Primitive, *Alias, *Enum, *Struct and *Class.
//
// The classification predicates are always evaluated against the resolved
// type, so an alias of int32 reports IsInt.
type Type interface {
	fmt.Stringer
	// Name returns the registered type name.
	Name() string
	// Kind returns the variant of the type.
	Kind() Kind
	// Resolved returns the type itself for non-aliases, and the final
	// non-alias target for aliases.
	Resolved() Type
	IsInt() bool
	IsFloat() bool
	IsBool() bool
	IsString() bool
	IsVoid() bool
	IsPrimitive() bool
	IsNumber() bool

	isType()
}

// Names of the built-in primitive types.
const (
	TypeVoid    = "void"
	TypeBool    = "bool"
	TypeInt8    = "int8"
	TypeUint8   = "uint8"
	TypeInt16   = "int16"
	TypeUint16  = "uint16"
	TypeInt32   = "int32"
	TypeUint32  = "uint32"
	TypeInt64   = "int64"
	TypeUint64  = "uint64"
	TypeIntptr  = "intptr"
	TypeFloat32 = "float32"
	TypeFloat64 = "float64"
	TypeString  = "string"
)

// Primitives lists the built-in types seeded into every registry, in
// registration order.
var Primitives = []string{
	TypeVoid,
	TypeBool,
	TypeInt8,
	TypeUint8,
	TypeInt16,
	TypeUint16,
	TypeInt32,
	TypeUint32,
	TypeInt64,
	TypeUint64,
	TypeIntptr,
	TypeFloat32,
	TypeFloat64,
	TypeString,
}

// Primitive is a built-in scalar or string type. Its classification is
// derived from its name only.
type Primitive struct {
	name string
}

// NewPrimitive returns a primitive type with the given name.
func NewPrimitive(name string) *Primitive {
	return &Primitive{name: name}
}

func (*Primitive) isType() {}

// Name returns the primitive name.
func (p *Primitive) Name() string { return p.name }

// Kind returns KindPrimitive.
func (*Primitive) Kind() Kind { return KindPrimitive }

// Resolved returns p.
func (p *Primitive) Resolved() Type { return p }

// IsInt reports whether p is one of the integer primitives.
func (p *Primitive) IsInt() bool { return strings.Contains(p.name, "int") }

// IsFloat reports whether p is float32 or float64.
func (p *Primitive) IsFloat() bool { return strings.Contains(p.name, "float") }

// IsBool reports whether p is bool.
func (p *Primitive) IsBool() bool { return p.name == TypeBool }

// IsString reports whether p is string.
func (p *Primitive) IsString() bool { return p.name == TypeString }

// IsVoid reports whether p is void.
func (p *Primitive) IsVoid() bool { return p.name == TypeVoid }

// IsPrimitive returns true.
func (*Primitive) IsPrimitive() bool { return true }

// IsNumber reports whether p is an integer or float primitive.
func (p *Primitive) IsNumber() bool { return p.IsInt() || p.IsFloat() }

// Is64 reports whether p is one of the 64-bit primitives.
func (p *Primitive) Is64() bool { return strings.HasSuffix(p.name, "64") }

// IsUnsigned reports whether p is an unsigned integer primitive.
func (p *Primitive) IsUnsigned() bool { return strings.HasPrefix(p.name, "uint") }

func (p *Primitive) String() string { return "Primitive " + p.name }

// classes is embedded by the non-primitive, non-alias types. They report
// false for every classification except where they override it.
type classes struct{}

func (classes) IsInt() bool       { return false }
func (classes) IsFloat() bool     { return false }
func (classes) IsBool() bool      { return false }
func (classes) IsString() bool    { return false }
func (classes) IsVoid() bool      { return false }
func (classes) IsPrimitive() bool { return false }
func (classes) IsNumber() bool    { return false }

// AsPrimitive returns the resolved primitive of t, if it is one.
func AsPrimitive(t Type) (*Primitive, bool) {
	if t == nil {
		return nil, false
	}
	p, ok := t.Resolved().(*Primitive)
	return p, ok
}
