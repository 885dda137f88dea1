package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter(t *testing.T) {
	e := NewEmitter(NewContext("api.h"))
	b := e.PushBlock("struct S {", Indent(), PostPop("};"))
	e.AddLines("int32_t x;")
	e.Pop(b)
	require.NoError(t, e.Err())
	assert.Equal(t, []string{"struct S {", "  int32_t x;", "};"}, e.Lines())
}

func TestEmitterStickyError(t *testing.T) {
	e := NewEmitter(NewContext("api.h"))
	outer := e.PushBlock("outer {", Indent())
	inner := e.PushBlock("inner {", Indent())
	e.Pop(outer)
	require.ErrorIs(t, e.Err(), ErrUnexpectedBlock)

	e.Fail(errors.New("later"))
	e.Pop(inner)
	assert.ErrorIs(t, e.Err(), ErrUnexpectedBlock)
}
