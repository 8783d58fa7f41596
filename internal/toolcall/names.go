package toolcall

import (
	"strings"
	"unicode"
)

// NormalizeName maps a tool identifier to its canonical lowercase,
// hyphenated form so that `Create_File`, `createFile` and `create-file`
// all resolve to `create-file`.
func NormalizeName(name string) string {
	runes := []rune(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(runes) + 4)

	for i, r := range runes {
		switch {
		case isSeparator(r):
			b.WriteRune('-')
		case unicode.IsUpper(r):
			if i > 0 && startsWord(runes, i) {
				b.WriteRune('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}

	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}

// DisplayName turns a tool name into a human label: `create-file` becomes
// `Create File`.
func DisplayName(name string) string {
	parts := strings.Split(NormalizeName(name), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.', '/', ':':
		return true
	}
	return false
}

// startsWord reports whether the upper-case rune at i opens a new word:
// after a lower-case letter or digit ("toolName"), or as the last capital
// of an acronym followed by lower case ("HTTPServer").
func startsWord(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
