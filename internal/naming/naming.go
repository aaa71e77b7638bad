package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// KeySeparator replaces every character that is ambiguous inside a
// reference path.
const KeySeparator = '.'

// ClearKey normalizes a raw name into a component key.
//
// The input is first brought to Unicode NFC so canonically equivalent
// spellings produce the same key. Then "/", "#", "~" and whitespace, which
// would split or escape a JSON pointer segment, are replaced with ".".
// The function is pure and total: ClearKey("") == "".
//
// Example: "orders/created" -> "orders.created"
// Example: "user events#v2" -> "user.events.v2"
func ClearKey(raw string) string {
	if raw == "" {
		return ""
	}
	s := norm.NFC.String(raw)
	if !strings.ContainsFunc(s, isReserved) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isReserved(r) {
			b.WriteRune(KeySeparator)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isReserved(r rune) bool {
	switch r {
	case '/', '#', '~':
		return true
	}
	return unicode.IsSpace(r)
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash, colon, space) start a new word.
// Letters inside a word keep their case.
// Example: "user_profile" -> "UserProfile"
// Example: "orders:created" -> "OrdersCreated"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}
	words := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '_', '-', '.', '/', ':':
			return true
		}
		return unicode.IsSpace(r)
	})
	var b strings.Builder
	b.Grow(len(s))
	for _, w := range words {
		b.WriteString(titleCaser.String(w))
	}
	return b.String()
}
