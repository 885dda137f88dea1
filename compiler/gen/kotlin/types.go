package kotlin

import (
	"strings"

	"github.com/benn-herrera/letterboxed-mp/compiler/gen"
	"github.com/benn-herrera/letterboxed-mp/schema"
)

// valueKind classifies how a value crosses JNI.
type valueKind uint8

const (
	kindVoid valueKind = iota
	kindScalar
	kindString
	kindDoubles // List<Double> as DoubleArray
	kindEnum    // enum value as Int
	kindHandle  // class instance as its native handle
)

// value is the JNI rendition of a parameter or return value.
type value struct {
	name string
	kind valueKind
	elem schema.Type
	ref  schema.RefType
}

// native is a class method or free function bound through JNI. Bound
// natives are private external funs taking the receiver handle first.
type native struct {
	name   string // schema name
	static bool
	params []value
	result value
}

type callable interface {
	gen.Typed
	Parameters() []*schema.Parameter
}

// bindNative returns the JNI binding of c, or false if a parameter or the
// result has no JNI rendition.
func bindNative(c callable, static bool) (*native, bool) {
	n := &native{name: c.Name(), static: static}
	for _, p := range c.Parameters() {
		v, ok := bindValue(p)
		if !ok {
			return n, false
		}
		n.params = append(n.params, v)
	}
	if c.IsVoid() {
		n.result = value{kind: kindVoid}
		return n, true
	}
	r, ok := bindValue(c)
	n.result = r
	return n, ok
}

func bindValue(v gen.Typed) (value, bool) {
	out := value{name: v.Name(), elem: v.Resolved(), ref: v.RefType()}
	if out.elem == nil || v.IsArray() {
		return out, false
	}
	if a, ok := v.Type().(*schema.Alias); ok && (a.RefType() != schema.RefNone || a.IsArray() || a.IsList()) {
		return out, false
	}
	plainRef := out.ref == schema.RefNone || out.ref == schema.RefNonOptional
	if v.IsList() {
		p, ok := out.elem.(*schema.Primitive)
		out.kind = kindDoubles
		return out, plainRef && ok && p.Name() == schema.TypeFloat64
	}
	switch t := out.elem.(type) {
	case *schema.Primitive:
		out.kind = kindScalar
		if t.IsString() {
			out.kind = kindString
		}
		return out, plainRef && !t.IsUnsigned() && !t.IsVoid()
	case *schema.Enum:
		out.kind = kindEnum
		return out, out.ref == schema.RefNone
	case *schema.Class:
		out.kind = kindHandle
		switch out.ref {
		case schema.RefRaw, schema.RefNonOptional:
			return out, true
		case schema.RefUnique:
			// only returned ownership can be released into a handle
			_, isParam := v.(*schema.Parameter)
			return out, !isParam
		}
	}
	return out, false
}

// TypeName returns the Kotlin spelling of t.
func TypeName(t schema.Type) string {
	if t == nil {
		return ""
	}
	p, ok := t.(*schema.Primitive)
	if !ok {
		return t.Name()
	}
	switch p.Name() {
	case schema.TypeVoid:
		return "Unit"
	case schema.TypeBool:
		return "Boolean"
	case schema.TypeString:
		return "String"
	case schema.TypeInt8:
		return "Byte"
	case schema.TypeUint8:
		return "UByte"
	case schema.TypeInt16:
		return "Short"
	case schema.TypeUint16:
		return "UShort"
	case schema.TypeInt32:
		return "Int"
	case schema.TypeUint32:
		return "UInt"
	case schema.TypeInt64, schema.TypeIntptr:
		return "Long"
	case schema.TypeUint64:
		return "ULong"
	case schema.TypeFloat32:
		return "Float"
	case schema.TypeFloat64:
		return "Double"
	}
	return p.Name()
}

// TypeSpec returns the Kotlin type of v, wrapping lists and arrays.
func TypeSpec(v gen.Typed) string {
	base := TypeName(v.Type())
	switch {
	case v.IsList():
		return "List<" + base + ">"
	case v.IsArray():
		return "Array<" + base + ">"
	}
	return base
}

// JNIType returns the JNI C type carrying t.
func JNIType(t schema.Type) string {
	switch TypeName(t.Resolved()) {
	case "Unit":
		return "void"
	case "Boolean":
		return "jboolean"
	case "String":
		return "jstring"
	case "Byte":
		return "jbyte"
	case "Short":
		return "jshort"
	case "Int":
		return "jint"
	case "Long":
		return "jlong"
	case "Float":
		return "jfloat"
	case "Double":
		return "jdouble"
	}
	return "jobject"
}

// jni returns the JNI C type of v.
func (v value) jni() string {
	switch v.kind {
	case kindVoid:
		return "void"
	case kindDoubles:
		return "jdoubleArray"
	case kindEnum:
		return "jint"
	case kindHandle:
		return "jlong"
	}
	return JNIType(v.elem)
}

// external returns the Kotlin type of v in the external fun.
func (v value) external() string {
	switch v.kind {
	case kindVoid:
		return "Unit"
	case kindDoubles:
		return "DoubleArray"
	case kindEnum:
		return "Int"
	case kindHandle:
		return "Long"
	}
	return TypeName(v.elem)
}

// public returns the Kotlin type of v in the wrapper fun.
func (v value) public() string {
	switch v.kind {
	case kindVoid:
		return "Unit"
	case kindDoubles:
		return "List<Double>"
	}
	return TypeName(v.elem)
}

// Mangle escapes s for use in a JNI symbol: "_" becomes "_1" and "."
// separates path segments.
func Mangle(s string) string {
	s = strings.ReplaceAll(s, "_", "_1")
	return strings.ReplaceAll(s, ".", "_")
}

// externalName returns the name of the external fun bound to a schema
// method or function.
func externalName(name string) string { return gen.Camel(name) + "JNI" }
