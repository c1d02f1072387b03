// Package naming turns raw JSON keys into Swift identifiers and type names.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// FallbackIdentifier is used when a key has no letters or digits at all.
	FallbackIdentifier = "field"
	// TypeSuffix is appended to synthesized nested type names.
	TypeSuffix = "Type"
)

// reserved holds the Swift keywords that cannot be used as bare
// declaration names.
var reserved = map[string]struct{}{
	"associatedtype": {}, "class": {}, "deinit": {}, "enum": {}, "extension": {},
	"fileprivate": {}, "func": {}, "import": {}, "init": {}, "inout": {},
	"internal": {}, "let": {}, "open": {}, "operator": {}, "private": {},
	"protocol": {}, "public": {}, "rethrows": {}, "static": {}, "struct": {},
	"subscript": {}, "typealias": {}, "var": {}, "break": {}, "case": {},
	"continue": {}, "default": {}, "defer": {}, "do": {}, "else": {},
	"fallthrough": {}, "for": {}, "guard": {}, "if": {}, "in": {},
	"repeat": {}, "return": {}, "switch": {}, "where": {}, "while": {},
	"as": {}, "catch": {}, "false": {}, "is": {}, "nil": {}, "super": {},
	"self": {}, "throw": {}, "throws": {}, "true": {}, "try": {}, "any": {},
}

// Identifier converts a raw JSON key into a lowerCamel identifier: words
// are split on whitespace and punctuation, the first word is lower-cased
// and each following word is capitalized. Letters outside ASCII are kept.
// The mapping is total and pure.
//
//	"miscellaneous scores" -> "miscellaneousScores"
//	"user_id"              -> "userId"
//	"2fa"                  -> "_2Fa"
//	"default"              -> "`default`"
//	"名前"                 -> "名前"
func Identifier(key string) string {
	name := camel(words(fold(key)), false)

	if name == "" {
		return FallbackIdentifier
	}
	if first, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(first) {
		name = "_" + name
	}
	if _, ok := reserved[name]; ok {
		return "`" + name + "`"
	}
	return name
}

// TypeName derives the synthetic nested type name for an identifier:
// "info" -> "InfoType".
func TypeName(identifier string) string {
	name := camel(words(identifier), true)
	if name == "" {
		name = camel(FallbackIdentifier, true)
	}
	if first, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(first) {
		name = "_" + name
	}
	return name + TypeSuffix
}

// fold strips diacritics so that "café" becomes the plain "cafe".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// words replaces every rune that is neither a letter nor a digit with a
// space, so any punctuation acts as a word boundary.
func words(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
}

// camel joins the space separated words of s. ASCII words are cased by
// strcase; other words keep their runes and only change the case of the
// first one, since strcase drops every non-ASCII byte.
func camel(s string, upperFirst bool) string {
	var b strings.Builder
	for i, word := range strings.Fields(s) {
		upper := upperFirst || i > 0
		if isASCII(word) {
			if upper {
				b.WriteString(strcase.ToCamel(word))
			} else {
				b.WriteString(strcase.ToLowerCamel(word))
			}
			continue
		}
		first, size := utf8.DecodeRuneInString(word)
		if upper {
			first = unicode.ToUpper(first)
		} else {
			first = unicode.ToLower(first)
		}
		b.WriteRune(first)
		b.WriteString(word[size:])
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Scope hands out identifiers that are unique within one declaration
// scope, appending 2, 3, ... on collisions.
type Scope struct {
	used map[string]int
}

// NewScope creates an empty naming scope.
func NewScope() *Scope {
	return &Scope{used: make(map[string]int)}
}

// Unique returns name, or name with a numeric suffix if it was already
// handed out by this scope.
func (s *Scope) Unique(name string) string {
	count := s.used[name]
	s.used[name] = count + 1
	if count == 0 {
		return name
	}

	candidate := suffixed(name, count+1)
	for s.used[candidate] > 0 {
		count++
		candidate = suffixed(name, count+1)
	}
	s.used[candidate] = 1
	return candidate
}

func suffixed(name string, n int) string {
	if strings.HasSuffix(name, "`") {
		// A numbered keyword is no longer a keyword.
		return fmt.Sprintf("%s%d", strings.Trim(name, "`"), n)
	}
	return fmt.Sprintf("%s%d", name, n)
}
