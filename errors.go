// FILE: lixenwraith/options/errors.go
package options

import (
	"errors"
	"slices"
	"strings"
)

// Error kinds. Every error returned by this package wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	ErrUnknownOption       = errors.New("unknown option")
	ErrAmbiguousOption     = errors.New("ambiguous option")
	ErrInvalidSyntax       = errors.New("invalid syntax")
	ErrInvalidOptionValue  = errors.New("invalid option value")
	ErrInvalidBoolValue    = errors.New("invalid bool value")
	ErrMultipleOccurrences = errors.New("multiple occurrences")
	ErrMultipleValues      = errors.New("multiple values not allowed")
	ErrAtLeastOneValue     = errors.New("at least one value required")
	ErrRequiredOption      = errors.New("required option missing")
	ErrTooManyPositional   = errors.New("too many positional options")
	ErrInvalidStyle        = errors.New("invalid command line style")
	ErrReadingFile         = errors.New("reading file")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrInvalidCatalog      = errors.New("invalid option catalog")

	// ErrConfigNotFound is returned by the Builder when the configured file does not exist.
	// It is not fatal: the remaining sources are still loaded.
	ErrConfigNotFound = errors.New("configuration file not found")
)

// SyntaxKind refines ErrInvalidSyntax.
type SyntaxKind int

const (
	SyntaxNone SyntaxKind = iota
	SyntaxLongAdjacentNotAllowed
	SyntaxShortAdjacentNotAllowed
	SyntaxEmptyAdjacentParameter
	SyntaxMissingParameter
	SyntaxExtraParameter
	SyntaxUnrecognizedLine
)

// String returns the kind name used in diagnostics
func (k SyntaxKind) String() string {
	switch k {
	case SyntaxLongAdjacentNotAllowed:
		return "long_adjacent_not_allowed"
	case SyntaxShortAdjacentNotAllowed:
		return "short_adjacent_not_allowed"
	case SyntaxEmptyAdjacentParameter:
		return "empty_adjacent_parameter"
	case SyntaxMissingParameter:
		return "missing_parameter"
	case SyntaxExtraParameter:
		return "extra_parameter"
	case SyntaxUnrecognizedLine:
		return "unrecognized_line"
	default:
		return "none"
	}
}

// Error is the structured error returned by matching, reading, storing and notifying.
// The fields hold the substitution data; Error() renders the default message.
type Error struct {
	Kind          error      // one of the Err* sentinels
	Syntax        SyntaxKind // set when Kind is ErrInvalidSyntax
	Option        string     // option name as resolved (key or spelled name)
	OriginalToken string     // the raw token that carried the option
	Style         Style      // canonical prefix style in effect
	Value         string     // offending value, invalid line or file path
	Alternatives  []string   // candidate keys for ErrAmbiguousOption
	Line          int        // 1-based line for config file errors, 0 otherwise
	Message       string     // free-form text for kinds without a template
	Err           error      // underlying cause, if any
}

// Error renders the message template with the canonical option name substituted.
func (e *Error) Error() string {
	msg := e.template()
	canonical := e.CanonicalOption()
	if canonical == "" {
		msg = strings.ReplaceAll(msg, "option '%canonical_option%'", "option")
	}
	if e.Value == "" {
		msg = strings.ReplaceAll(msg, "argument ('%value%')", "argument")
	}
	msg = strings.ReplaceAll(msg, "%canonical_option%", canonical)
	msg = strings.ReplaceAll(msg, "%prefix%", e.Style.prefix())
	msg = strings.ReplaceAll(msg, "%value%", e.Value)
	return msg
}

// Unwrap exposes the kind sentinel and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// CanonicalOption returns the option as it should be shown to the user under the error's style.
// Long styles show prefix plus name, short styles show prefix plus the first letter of the
// original token, and style 0 (config files, environment) shows the bare name.
func (e *Error) CanonicalOption() string {
	if e.Option == "" || e.namesByToken() {
		return e.OriginalToken
	}

	token := stripPrefixes(e.OriginalToken)
	name := stripPrefixes(e.Option)

	if e.Style == AllowLong || e.Style == AllowLongDisguise {
		return e.Style.prefix() + name
	}
	if e.Style != 0 && token != "" {
		r := []rune(token)
		return e.Style.prefix() + string(r[0])
	}
	return name
}

// namesByToken reports kinds whose message always quotes the token verbatim
func (e *Error) namesByToken() bool {
	return e.Kind == ErrUnknownOption || e.Kind == ErrAmbiguousOption || e.Kind == ErrRequiredOption
}

func (e *Error) template() string {
	switch e.Kind {
	case ErrUnknownOption:
		return "unrecognised option '%canonical_option%'"
	case ErrAmbiguousOption:
		return e.ambiguousTemplate()
	case ErrMultipleOccurrences:
		return "option '%canonical_option%' cannot be specified more than once"
	case ErrMultipleValues:
		return "option '%canonical_option%' only takes a single argument"
	case ErrAtLeastOneValue:
		return "option '%canonical_option%' requires at least one argument"
	case ErrInvalidOptionValue:
		return "the argument ('%value%') for option '%canonical_option%' is invalid"
	case ErrInvalidBoolValue:
		return "the argument ('%value%') for option '%canonical_option%' is invalid. " +
			"Valid choices are 'on|off', 'yes|no', '1|0' and 'true|false'"
	case ErrRequiredOption:
		return "the option '%canonical_option%' is required but missing"
	case ErrTooManyPositional:
		return "too many positional options have been specified on the command line"
	case ErrReadingFile:
		return "can not read options configuration file '%value%'"
	case ErrInvalidSyntax:
		if e.Syntax == SyntaxNone && e.Message != "" {
			return e.Message
		}
		return syntaxTemplate(e.Syntax)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "unknown error"
}

func syntaxTemplate(kind SyntaxKind) string {
	switch kind {
	case SyntaxLongAdjacentNotAllowed:
		return "the unabbreviated option '%canonical_option%' does not take any arguments"
	case SyntaxShortAdjacentNotAllowed:
		return "the abbreviated option '%canonical_option%' does not take any arguments"
	case SyntaxEmptyAdjacentParameter:
		return "the argument for option '%canonical_option%' should follow immediately after the equal sign"
	case SyntaxMissingParameter:
		return "the required argument for option '%canonical_option%' is missing"
	case SyntaxExtraParameter:
		return "option '%canonical_option%' does not take any arguments"
	case SyntaxUnrecognizedLine:
		return "the options configuration file contains an invalid line '%value%'"
	}
	return "invalid syntax"
}

// ambiguousTemplate lists the alternatives unless the style is a short one,
// where every alternative is spelled the same by definition.
func (e *Error) ambiguousTemplate() string {
	tmpl := "option '%canonical_option%' is ambiguous"
	if e.Style == AllowDashForShort || e.Style == AllowSlashForShort || len(e.Alternatives) == 0 {
		return tmpl
	}

	unique := slices.Clone(e.Alternatives)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	var b strings.Builder
	b.WriteString(tmpl)
	b.WriteString(" and matches ")
	if len(unique) > 1 {
		for _, alt := range unique[:len(unique)-1] {
			b.WriteString("'%prefix%" + alt + "', ")
		}
		b.WriteString("and ")
	}
	if len(e.Alternatives) > 1 && len(unique) == 1 {
		b.WriteString("different versions of ")
	}
	b.WriteString("'%prefix%" + unique[len(unique)-1] + "'")
	return b.String()
}

// stripPrefixes removes leading '-' and '/' characters
func stripPrefixes(s string) string {
	return strings.TrimLeft(s, "-/")
}

// addContext attaches option name, original token and prefix style to an *Error in err's chain.
// Errors of other types pass through untouched.
func addContext(err error, option, originalToken string, style Style) error {
	var e *Error
	if errors.As(err, &e) {
		e.Option = option
		e.OriginalToken = originalToken
		e.Style = style
	}
	return err
}

func unknownOptionError(token string) *Error {
	return &Error{Kind: ErrUnknownOption, OriginalToken: token}
}

func ambiguousOptionError(alternatives []string) *Error {
	return &Error{Kind: ErrAmbiguousOption, Alternatives: alternatives}
}

func syntaxError(kind SyntaxKind, option, token string, style Style) *Error {
	return &Error{Kind: ErrInvalidSyntax, Syntax: kind, Option: option, OriginalToken: token, Style: style}
}

func validationError(kind error, value string) *Error {
	return &Error{Kind: kind, Value: value}
}
