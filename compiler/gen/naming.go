package gen

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmptyName is returned by the case conversions for an empty input.
var ErrEmptyName = errors.New("apigen: empty name")

// CamelToSnake converts "TheQuickBrownFox" to "the_quick_brown_fox", or to
// "THE_QUICK_BROWN_FOX" when screaming is set.
func CamelToSnake(s string, screaming bool) (string, error) {
	if s == "" {
		return "", ErrEmptyName
	}
	out := inflect.Underscore(s)
	if screaming {
		out = cases.Upper(language.Und).String(out)
	}
	return out, nil
}

// SnakeToCamel converts "the_quick_brown_fox" to "theQuickBrownFox", or to
// "TheQuickBrownFox" when capitalize is set. The case of the input words is
// normalized, so "ThE_qUiCk" gives "theQuick".
func SnakeToCamel(s string, capitalize bool) (string, error) {
	if s == "" {
		return "", ErrEmptyName
	}
	// Casers are stateful and not shared between calls.
	title, lower := cases.Title(language.Und), cases.Lower(language.Und)
	var b strings.Builder
	for i, w := range strings.Split(s, "_") {
		if w == "" {
			continue
		}
		if i == 0 && !capitalize {
			b.WriteString(lower.String(w))
			continue
		}
		b.WriteString(title.String(w))
	}
	return b.String(), nil
}

// EnsureSnake returns s in snake case, whether s is snake, screaming snake
// or camel case.
func EnsureSnake(s string) (string, error) {
	if s == "" {
		return "", ErrEmptyName
	}
	if strings.Contains(s, "_") || !hasLower(s) {
		return cases.Lower(language.Und).String(s), nil
	}
	return CamelToSnake(s, false)
}

// EnsureCamel returns s in lower camel case, whether s is snake or camel
// case.
func EnsureCamel(s string) (string, error) {
	if s == "" {
		return "", ErrEmptyName
	}
	if strings.Contains(s, "_") {
		return SnakeToCamel(s, false)
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r), nil
}

// Pascal returns s in upper camel case. Names in a validated document are
// never empty; Pascal returns "" for an empty s.
func Pascal(s string) string {
	snake, err := EnsureSnake(s)
	if err != nil {
		return ""
	}
	out, _ := SnakeToCamel(snake, true)
	return out
}

// Camel returns s in lower camel case, or "" for an empty s.
func Camel(s string) string {
	out, _ := EnsureCamel(s)
	return out
}

// Snake returns s in snake case, or "" for an empty s.
func Snake(s string) string {
	out, _ := EnsureSnake(s)
	return out
}

func hasLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}
