package domain

import (
	"strings"
)

// AddName appends name to names unless it is empty or already present
// (case-insensitively). Order of first appearance is kept.
func AddName(names []string, name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return names
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return names
		}
	}
	return append(names, name)
}

// NormalizeCode trims a source code. Codes keep their case; the code
// spaces this package deals with are case-sensitive by convention
// (language subtags lowercase, scripts title case, regions uppercase).
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

// LocaleCode is a parsed composite locale code: lang[_Script][_TR][_variant...].
type LocaleCode struct {
	Language  string
	Script    string
	Territory string
	Variants  []string
}

// ParseLocaleCode splits a locale code on '_' or '-'. The first subtag is
// the language; a 4-letter subtag before the territory is the script; a
// 2-letter or 3-digit subtag is the territory; anything else is a variant.
func ParseLocaleCode(code string) LocaleCode {
	parts := strings.FieldsFunc(strings.TrimSpace(code), func(r rune) bool {
		return r == '_' || r == '-'
	})
	var lc LocaleCode
	if len(parts) == 0 {
		return lc
	}
	lc.Language = strings.ToLower(parts[0])
	for _, p := range parts[1:] {
		switch {
		case lc.Script == "" && lc.Territory == "" && len(lc.Variants) == 0 && len(p) == 4 && isAlpha(p):
			lc.Script = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		case lc.Territory == "" && len(lc.Variants) == 0 && len(p) == 2 && isAlpha(p):
			lc.Territory = strings.ToUpper(p)
		case lc.Territory == "" && len(lc.Variants) == 0 && len(p) == 3 && isDigits(p):
			lc.Territory = p
		default:
			lc.Variants = append(lc.Variants, strings.ToLower(p))
		}
	}
	return lc
}

// String joins the subtags with '_'.
func (c LocaleCode) String() string {
	parts := make([]string, 0, 3+len(c.Variants))
	parts = append(parts, c.Language)
	if c.Script != "" {
		parts = append(parts, c.Script)
	}
	if c.Territory != "" {
		parts = append(parts, c.Territory)
	}
	parts = append(parts, c.Variants...)
	return strings.Join(parts, "_")
}

// HasVariant reports whether v is one of the code's variants.
func (c LocaleCode) HasVariant(v string) bool {
	for _, x := range c.Variants {
		if x == v {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
