package gen

import "github.com/benn-herrera/letterboxed-mp/schema"

// Typed is the view of a constant, member, parameter, method or function
// that backends render.
type Typed interface {
	Name() string
	Type() schema.Type
	Resolved() schema.Type
	RefType() schema.RefType
	ArrayCount() int
	IsArray() bool
	IsList() bool
	IsConst() bool
	IsString() bool
	IsPrimitive() bool
	IsVoid() bool
}

// Emitter wraps a Context with a sticky error, so a backend can emit a whole
// file and check the first failure once at the end.
//
//	e := gen.NewEmitter(hdr)
//	b := e.PushBlock("struct S {", gen.Indent(), gen.PostPop("};"))
//	e.AddLines("int32_t x;")
//	e.Pop(b)
//	return e.Err()
type Emitter struct {
	*Context
	err error
}

// NewEmitter returns an emitter writing to ctx.
func NewEmitter(ctx *Context) *Emitter {
	return &Emitter{Context: ctx}
}

// Pop closes b unless an earlier step failed.
func (e *Emitter) Pop(b *Block) {
	if e.err == nil {
		e.err = e.PopBlock(b)
	}
}

// Fail records err unless an earlier step failed.
func (e *Emitter) Fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Err returns the first failure.
func (e *Emitter) Err() error { return e.err }
