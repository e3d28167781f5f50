// Package casing holds the naming predicates shared by the line and tree rules.
//
// Every predicate looks at the first character of a name only (CamelCase also
// rejects underscores anywhere). A name such as fooBar therefore passes the
// snake_case check; that is the contract of rules S008 through S011.
package casing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Style is a naming convention.
type Style int

const (
	CamelCase Style = iota
	SnakeCase
)

func (s Style) String() string {
	switch s {
	case CamelCase:
		return "CamelCase"
	case SnakeCase:
		return "snake_case"
	default:
		return "unknown"
	}
}

// Valid reports whether name conforms to s. The empty name is always valid:
// there is nothing to flag.
func (s Style) Valid(name string) bool {
	if name == "" {
		return true
	}
	switch s {
	case CamelCase:
		return IsCamelCase(name)
	case SnakeCase:
		return IsSnakeCase(name)
	default:
		return true
	}
}

// StartsUpper reports whether the first rune of name is an uppercase letter.
func StartsUpper(name string) bool {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return false
	}
	return unicode.IsUpper(r)
}

// IsCamelCase reports whether name starts with an uppercase letter and
// contains no underscore.
func IsCamelCase(name string) bool {
	return StartsUpper(name) && !strings.Contains(name, "_")
}

// IsSnakeCase reports whether name does not start with an uppercase letter.
func IsSnakeCase(name string) bool {
	return !StartsUpper(name)
}
