// FILE: lixenwraith/options/option.go
package options

import (
	"strings"

	"golang.org/x/text/cases"
)

// MatchResult classifies how a spelled name matches an option
type MatchResult int

const (
	NoMatch MatchResult = iota
	ApproxMatch
	FullMatch
)

// Option is one declared option: its names, description and value semantic.
// Options are immutable once created.
type Option struct {
	longNames   []string
	shortName   string // stored with its dash, e.g. "-c"
	description string
	semantic    ValueSemantic
}

// NewOption declares an option from a comma-separated name list.
// "config-file,c" declares a long name and the short name -c, ",c" declares
// a short-only option. A nil semantic declares a presence-only switch.
func NewOption(names string, semantic ValueSemantic, description string) (*Option, error) {
	if semantic == nil {
		semantic = Untyped(true)
	}
	o := &Option{description: description, semantic: semantic}
	if err := o.setNames(names); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Option) setNames(names string) error {
	parts := strings.Split(names, ",")
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		if len(last) == 1 {
			o.shortName = "-" + last
			parts = parts[:len(parts)-1]
		}
	}
	for _, name := range parts {
		if name == "" {
			continue
		}
		o.longNames = append(o.longNames, name)
	}
	if len(o.longNames) == 0 && o.shortName == "" {
		return &Error{Kind: ErrInvalidCatalog, Message: "option declared without a name: '" + names + "'"}
	}
	return nil
}

// LongName returns the first long name, or "" for a short-only option
func (o *Option) LongName() string {
	if len(o.longNames) == 0 {
		return ""
	}
	return o.longNames[0]
}

// LongNames returns all declared long names
func (o *Option) LongNames() []string {
	return append([]string(nil), o.longNames...)
}

// ShortName returns the short name with its dash, e.g. "-c"
func (o *Option) ShortName() string {
	return o.shortName
}

// Description returns the help text
func (o *Option) Description() string {
	return o.description
}

// Semantic returns the option's value semantic
func (o *Option) Semantic() ValueSemantic {
	return o.semantic
}

// Match compares a spelled name (without prefix) against the option's names.
func (o *Option) Match(name string, approx, longIgnoreCase, shortIgnoreCase bool) MatchResult {
	result := NoMatch
	local := name
	if longIgnoreCase {
		local = fold(name)
	}

	for _, long := range o.longNames {
		if longIgnoreCase {
			long = fold(long)
		}

		// "name*" accepts any spelling that begins with "name"
		if result == NoMatch && strings.HasSuffix(long, "*") {
			if strings.HasPrefix(local, long[:len(long)-1]) {
				result = ApproxMatch
			}
		}

		if long == local {
			result = FullMatch
			break
		}
		if approx && strings.HasPrefix(long, local) {
			result = ApproxMatch
		}
	}

	if result != FullMatch && o.shortName != "" {
		short, spelled := o.shortName, name
		if shortIgnoreCase {
			short, spelled = fold(short), fold(name)
		}
		if short == spelled {
			result = FullMatch
		}
	}
	return result
}

// Key returns the canonical settings key for a spelled name.
// A wildcard long name does not denote one key, so the spelling itself is used.
func (o *Option) Key(spelled string) string {
	if len(o.longNames) == 0 {
		return o.shortName
	}
	if strings.Contains(o.longNames[0], "*") {
		return spelled
	}
	return o.longNames[0]
}

// CanonicalDisplayName renders the option the way a user would type it under prefixStyle.
func (o *Option) CanonicalDisplayName(prefixStyle Style) string {
	long := o.LongName()
	short := strings.TrimPrefix(o.shortName, "-")

	switch {
	case prefixStyle == AllowLong && long != "":
		return "--" + long
	case prefixStyle == AllowLongDisguise && long != "":
		return "-" + long
	case prefixStyle == AllowSlashForShort && short != "":
		return "/" + short
	case prefixStyle == AllowDashForShort && short != "":
		return "-" + short
	case long != "":
		return long
	}
	return o.shortName
}

// FormatName renders the name column of the help output: "-c [ --config ]" or "--config"
func (o *Option) FormatName() string {
	if o.shortName != "" {
		if len(o.longNames) == 0 {
			return o.shortName
		}
		return o.shortName + " [ --" + o.longNames[0] + " ]"
	}
	return "--" + o.longNames[0]
}

// FormatParameter renders the value placeholder of the help output
func (o *Option) FormatParameter() string {
	if o.semantic.MaxTokens() != 0 {
		return o.semantic.Name()
	}
	return ""
}

func fold(s string) string {
	return cases.Fold().String(s)
}
