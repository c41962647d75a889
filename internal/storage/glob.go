package storage

import (
	"regexp"
	"strings"
)

// MatchGlob reports whether key matches pattern, using the glob syntax
// supported by KEYS: ? matches a single character, * matches any run of
// characters (including none), and [...] matches a character class
// ([abc], [a-z], and [^abc]/[^a-z] negation). An unterminated '[' is taken
// literally. A pattern whose translation does not compile (e.g. a reversed
// range such as [z-a]) returns an error; Store.Keys then matches no key
// rather than failing the whole call.
func MatchGlob(pattern, key string) (bool, error) {
	re, err := compileGlob(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(key), nil
}

func compileGlob(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			end := i + 1
			negate := false
			if end < len(runes) && (runes[end] == '^') {
				negate = true
				end++
			}
			start := end
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				// Unterminated class: treat '[' as a literal.
				b.WriteString(regexp.QuoteMeta("["))
				continue
			}
			class := string(runes[start:end])
			b.WriteString("[")
			if negate {
				b.WriteString("^")
			}
			b.WriteString(escapeClassBody(class))
			b.WriteString("]")
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")

	return regexp.Compile(b.String())
}

// escapeClassBody escapes characters that are meaningful to RE2 inside a
// character class but not part of the glob class syntax, while preserving
// literal ranges like a-z.
func escapeClassBody(class string) string {
	var b strings.Builder
	for _, c := range class {
		switch c {
		case '\\', ']', '^':
			b.WriteString("\\")
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
