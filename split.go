// FILE: lixenwraith/options/split.go
package options

import "strings"

const (
	// DefaultSeparators split SplitUnix tokens
	DefaultSeparators = " \t\n\r"
	// DefaultQuotes group separators into one token
	DefaultQuotes = `'"`
	// DefaultEscapes make the next character literal
	DefaultEscapes = `\`
)

// SplitUnix splits a command line the way a Unix shell would, without expansion.
// Quote characters toggle quoting and are removed; an escape character makes the
// next character literal. Empty tokens are dropped. Empty arguments select the defaults.
func SplitUnix(line, separators, quotes, escapes string) []string {
	if separators == "" {
		separators = DefaultSeparators
	}
	if quotes == "" {
		quotes = DefaultQuotes
	}
	if escapes == "" {
		escapes = DefaultEscapes
	}

	var (
		tokens  []string
		current strings.Builder
		quote   rune // active quote character, 0 when unquoted
		escaped bool
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case strings.ContainsRune(escapes, r):
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && strings.ContainsRune(quotes, r):
			quote = r
		case quote == 0 && strings.ContainsRune(separators, r):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}
