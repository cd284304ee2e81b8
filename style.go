// FILE: lixenwraith/options/style.go
package options

// Style is a bitmask of accepted command-line conventions.
// Flags combine with bitwise OR; a zero Style means DefaultStyle.
type Style uint32

const (
	// AllowLong accepts "--name" options
	AllowLong Style = 1 << iota
	// AllowShort accepts single-letter options
	AllowShort
	// AllowDashForShort spells short options as "-x"
	AllowDashForShort
	// AllowSlashForShort spells short options as "/x"
	AllowSlashForShort
	// LongAllowAdjacent accepts "--name=value"
	LongAllowAdjacent
	// LongAllowNext accepts "--name value"
	LongAllowNext
	// ShortAllowAdjacent accepts "-xvalue"
	ShortAllowAdjacent
	// ShortAllowNext accepts "-x value"
	ShortAllowNext
	// AllowSticky accepts "-abc" as "-a -b -c" for zero-token switches
	AllowSticky
	// AllowGuessing accepts unique abbreviations of long names
	AllowGuessing
	// LongCaseInsensitive folds case when matching long names
	LongCaseInsensitive
	// ShortCaseInsensitive folds case when matching short names
	ShortCaseInsensitive
	// AllowLongDisguise accepts "-name" for long options
	AllowLongDisguise
)

const (
	// CaseInsensitive folds case for both long and short names
	CaseInsensitive = LongCaseInsensitive | ShortCaseInsensitive

	// UnixStyle is the conventional POSIX/GNU flavour
	UnixStyle = AllowShort | AllowDashForShort | ShortAllowAdjacent | ShortAllowNext |
		AllowLong | LongAllowAdjacent | LongAllowNext |
		AllowSticky | AllowGuessing

	// DefaultStyle is used when no style is set
	DefaultStyle = UnixStyle
)

// Has reports whether all bits of flag are set
func (s Style) Has(flag Style) bool {
	return s&flag == flag
}

// Validate checks that the style can actually accept options.
// It returns ErrInvalidStyle naming the pair of flags that conflict.
func (s Style) Validate() error {
	if (s.Has(AllowLong) || s.Has(AllowLongDisguise)) && !s.Has(LongAllowNext) && !s.Has(LongAllowAdjacent) {
		return &Error{Kind: ErrInvalidStyle, Message: "options misconfiguration: choose one or other of " +
			"'LongAllowNext' (whitespace separated arguments) or " +
			"'LongAllowAdjacent' ('=' separated arguments) for long options."}
	}

	if s.Has(AllowShort) {
		if s.Has(AllowDashForShort) == s.Has(AllowSlashForShort) {
			return &Error{Kind: ErrInvalidStyle, Message: "options misconfiguration: choose one or other of " +
				"'AllowSlashForShort' (slashes) or " +
				"'AllowDashForShort' (dashes) for short options."}
		}
		if !s.Has(ShortAllowNext) && !s.Has(ShortAllowAdjacent) {
			return &Error{Kind: ErrInvalidStyle, Message: "options misconfiguration: choose one or other of " +
				"'ShortAllowNext' (whitespace separated arguments) or " +
				"'ShortAllowAdjacent' ('=' separated arguments) for short options."}
		}
	}
	return nil
}

// canonicalPrefix picks the single style used to render option names in diagnostics
func (s Style) canonicalPrefix() Style {
	switch {
	case s.Has(AllowLong):
		return AllowLong
	case s.Has(AllowLongDisguise):
		return AllowLongDisguise
	case s.Has(AllowShort) && s.Has(AllowDashForShort):
		return AllowDashForShort
	case s.Has(AllowShort) && s.Has(AllowSlashForShort):
		return AllowSlashForShort
	}
	return 0
}

// prefix returns the literal prefix of a canonical prefix style
func (s Style) prefix() string {
	switch s {
	case AllowLong:
		return "--"
	case AllowLongDisguise, AllowDashForShort:
		return "-"
	case AllowSlashForShort:
		return "/"
	}
	return ""
}
