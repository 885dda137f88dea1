package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelToSnake(t *testing.T) {
	s, err := CamelToSnake("TheQuickBrownFox", false)
	require.NoError(t, err)
	assert.Equal(t, "the_quick_brown_fox", s)

	s, err = CamelToSnake("TheQuickBrownFox", true)
	require.NoError(t, err)
	assert.Equal(t, "THE_QUICK_BROWN_FOX", s)

	_, err = CamelToSnake("", false)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestSnakeToCamel(t *testing.T) {
	tests := []struct {
		in         string
		capitalize bool
		want       string
	}{
		{"the_quick_brown_fox", false, "theQuickBrownFox"},
		{"ThE_qUiCk_BrOwN_fOx", false, "theQuickBrownFox"},
		{"ThE_qUiCk_BrOwN_fOx", true, "TheQuickBrownFox"},
		{"list_sum", true, "ListSum"},
		{"the", false, "the"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SnakeToCamel(tt.in, tt.capitalize)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := SnakeToCamel("", true)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestEnsure(t *testing.T) {
	for in, want := range map[string]string{
		"THE_QUICK":     "the_quick",
		"the_quick":     "the_quick",
		"TheQuickBrown": "the_quick_brown",
		"the":           "the",
	} {
		got, err := EnsureSnake(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	for in, want := range map[string]string{
		"TheQuick":  "theQuick",
		"the":       "the",
		"the_quick": "theQuick",
		"THE_QUICK": "theQuick",
	} {
		got, err := EnsureCamel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := EnsureSnake("")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = EnsureCamel("")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestPascal(t *testing.T) {
	assert.Equal(t, "TheClass", Pascal("TheClass"))
	assert.Equal(t, "ListSum", Pascal("list_sum"))
	assert.Equal(t, "MaxCount", Pascal("MAX_COUNT"))
	assert.Equal(t, "listSum", Camel("list_sum"))
	assert.Equal(t, "the_class", Snake("TheClass"))
	assert.Equal(t, "", Pascal(""))
}
