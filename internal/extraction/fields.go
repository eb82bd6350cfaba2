package extraction

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// fields reads a loosely keyed JSON object. Every lookup is by canonical
// snake_case name; the camelCase spelling and any aliases are accepted too.
type fields map[string]any

// asFields returns v as an object, if it is one.
func asFields(v any) (fields, bool) {
	m, ok := v.(map[string]any)
	return fields(m), ok
}

// lookup returns the first non-null value found under name, its camelCase
// form, or one of the aliases (each also tried in camelCase).
func (f fields) lookup(name string, aliases ...string) (any, bool) {
	for _, key := range append([]string{name}, aliases...) {
		for _, k := range keySpellings(key) {
			if v, ok := f[k]; ok && v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

// has reports whether any spelling of the field is present and non-null.
func (f fields) has(name string, aliases ...string) bool {
	_, ok := f.lookup(name, aliases...)
	return ok
}

// str returns a trimmed string field. Numbers are formatted.
func (f fields) str(name string, aliases ...string) (string, bool) {
	v, ok := f.lookup(name, aliases...)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// optStr returns a string field as a pointer, nil when absent or blank.
func (f fields) optStr(name string, aliases ...string) *string {
	s, ok := f.str(name, aliases...)
	if !ok {
		return nil
	}
	return &s
}

// num returns a numeric field. present is true when the field exists at
// all; ok is true when it also parsed.
func (f fields) num(name string, aliases ...string) (value float64, present, ok bool) {
	v, found := f.lookup(name, aliases...)
	if !found {
		return 0, false, false
	}
	value, ok = parseNumber(v)
	return value, true, ok
}

// obj returns a nested object field.
func (f fields) obj(name string, aliases ...string) (fields, bool) {
	v, ok := f.lookup(name, aliases...)
	if !ok {
		return nil, false
	}
	return asFields(v)
}

// list returns an array field. A single object is treated as a one-item list.
func (f fields) list(name string, aliases ...string) ([]any, bool) {
	v, ok := f.lookup(name, aliases...)
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case []any:
		return t, true
	case map[string]any:
		return []any{t}, true
	default:
		return nil, false
	}
}

// keySpellings returns the snake_case key followed by its camelCase form.
func keySpellings(snake string) []string {
	if !strings.Contains(snake, "_") {
		return []string{snake}
	}
	return []string{snake, camel(snake)}
}

// camel converts snake_case to camelCase.
func camel(snake string) string {
	parts := strings.Split(snake, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// parseNumber coerces a JSON value to a finite float64. Strings may carry
// currency symbols, thousands separators, spaces and a percent sign;
// accounting parentheses mean negative.
func parseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case json.Number:
		f, err := t.Float64()
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	case string:
		return parseNumericString(t)
	default:
		return 0, false
	}
}

// parseNumericString accepts a plain decimal wrapped in currency symbols or
// codes, thousands separators, spaces and a percent sign. Anything else,
// such as ranges or exponents, is rejected.
func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if rest, ok := cutSign(s); ok {
		negative = !negative
		s = rest
	}
	s = strings.TrimRight(trimCurrencyCode(strings.TrimLeft(trimCurrencyCode(s), " ")), " ")

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Sc, r), unicode.IsSpace(r), r == ',', r == '%':
		default:
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if rest, ok := cutSign(digits); ok {
		negative = !negative
		digits = rest
	}
	if !isDecimal(digits) {
		return 0, false
	}

	f, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}

func cutSign(s string) (string, bool) {
	for _, sign := range []string{"-", "−"} {
		if rest, ok := strings.CutPrefix(s, sign); ok {
			return rest, true
		}
	}
	return s, false
}

// trimCurrencyCode removes a two or three letter upper-case code such as
// NZ or USD from either end of s.
func trimCurrencyCode(s string) string {
	isCode := func(c string) bool {
		for _, r := range c {
			if r < 'A' || r > 'Z' {
				return false
			}
		}
		return true
	}
	for _, n := range []int{3, 2} {
		if len(s) > n && isCode(s[:n]) {
			return s[n:]
		}
		if len(s) > n && isCode(s[len(s)-n:]) {
			return s[:len(s)-n]
		}
	}
	return s
}

// isDecimal reports whether s is digits with at most one decimal point.
func isDecimal(s string) bool {
	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}

// round returns x rounded half away from zero to places decimals.
func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
