package engine

import (
	"strings"
	"unicode"
)

// EnvName converts a deployment field name into an environment variable name.
// Words of camelCase or PascalCase names are joined with underscores and the
// result is upper-cased; a run of capitals stays one word, so
// "OIDCRedirectUri" becomes "OIDC_REDIRECT_URI". Characters other than letters
// and digits act as separators. The result never starts or ends with an
// underscore and never contains two in a row.
func EnvName(field string) string {
	runes := []rune(field)
	var b strings.Builder
	b.Grow(len(field) + 4)

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			writeSeparator(&b)
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				writeSeparator(&b)
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return strings.TrimSuffix(b.String(), "_")
}

func writeSeparator(b *strings.Builder) {
	s := b.String()
	if s == "" || s[len(s)-1] == '_' {
		return
	}
	b.WriteByte('_')
}
