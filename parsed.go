// FILE: lixenwraith/options/parsed.go
package options

// tokenForm records how an occurrence was spelled, for adjacency checks
type tokenForm int

const (
	formOther tokenForm = iota
	formLong
	formShort
)

// Occurrence is one option occurrence produced by a parser, before conversion.
type Occurrence struct {
	// Key is the canonical option key; empty for positional tokens without a mapping
	Key string
	// Position is the positional index, -1 for named options
	Position int
	// Value holds the tokens that belong to this occurrence
	Value []string
	// Original holds the tokens as the user wrote them
	Original []string
	// Unregistered marks occurrences that matched no declared option
	Unregistered bool

	form          tokenForm
	adjacent      bool // Value[0] came attached to the name ("--x=v", "-xv")
	afterDashDash bool // positional token after a "--" terminator
}

// ParseResult is the ordered output of one parser run
type ParseResult struct {
	Options []Occurrence
	Catalog *Catalog
	// Prefix is the canonical prefix style used to render option names in errors
	Prefix Style
}

// CollectUnrecognized returns the original tokens of unregistered occurrences.
// With includePositional, positional tokens are included as well.
func CollectUnrecognized(opts []Occurrence, includePositional bool) []string {
	var out []string
	for _, opt := range opts {
		if opt.Unregistered || (includePositional && opt.Position != -1) {
			out = append(out, opt.Original...)
		}
	}
	return out
}

func positionalOccurrence(token string, afterDashDash bool) Occurrence {
	return Occurrence{
		Position:      0,
		Value:         []string{token},
		Original:      []string{token},
		afterDashDash: afterDashDash,
	}
}
