package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeITS returns the canonical form of an ITS number: surrounding space
// trimmed and, for integer values, the plain decimal form ("00123" -> "123").
func NormalizeITS(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return s
}

// NormalizeITSPtr normalizes an optional ITS number. Blank values become nil.
func NormalizeITSPtr(v *string) *string {
	if v == nil {
		return nil
	}
	n := NormalizeITS(*v)
	if n == "" {
		return nil
	}
	return &n
}

// SameITS compares two optional ITS numbers after normalization. Nil never matches.
func SameITS(a, b *string) bool {
	if a == nil || b == nil {
		return false
	}
	na, nb := NormalizeITS(*a), NormalizeITS(*b)
	return na != "" && na == nb
}

func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		// JSON numbers decode as float64; avoid exponent notation for ids
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// ToInt64 parses a path or query value. Invalid input yields 0.
func ToInt64(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ToIntOrZero parses an int and falls back to 0, matching how slot numbers
// are accepted from admin forms.
func ToIntOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func StringPtr(s string) *string {
	return &s
}

// NilIfEmpty returns nil for a blank string.
func NilIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
