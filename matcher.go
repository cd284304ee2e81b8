// FILE: lixenwraith/options/matcher.go
package options

import (
	"fmt"
	"strconv"
	"strings"
)

// styleParser claims tokens from the front of args.
// consumed == 0 means the parser does not recognise args[0].
type styleParser func(args []string) ([]Occurrence, int, error)

// matcher classifies command-line tokens into occurrences for one run
type matcher struct {
	catalog           *Catalog
	style             Style
	prefix            Style
	positional        *PositionalOptions
	extra             ExtraParser
	extraStyle        StyleParser
	allowUnregistered bool

	parsers []styleParser
}

func newMatcher(catalog *Catalog, style Style, positional *PositionalOptions,
	extra ExtraParser, extraStyle StyleParser, allowUnregistered bool) *matcher {
	m := &matcher{
		catalog:           catalog,
		style:             style,
		prefix:            style.canonicalPrefix(),
		positional:        positional,
		extra:             extra,
		extraStyle:        extraStyle,
		allowUnregistered: allowUnregistered,
	}

	if extraStyle != nil {
		m.parsers = append(m.parsers, styleParser(extraStyle))
	}
	if extra != nil {
		m.parsers = append(m.parsers, m.parseAdditional)
	}
	if style.Has(AllowLong) {
		m.parsers = append(m.parsers, m.parseLong)
	}
	if style.Has(AllowLongDisguise) {
		m.parsers = append(m.parsers, m.parseDisguisedLong)
	}
	if style.Has(AllowShort) && style.Has(AllowDashForShort) {
		m.parsers = append(m.parsers, m.parseShort)
	}
	if style.Has(AllowShort) && style.Has(AllowSlashForShort) {
		m.parsers = append(m.parsers, m.parseSlash)
	}
	m.parsers = append(m.parsers, m.parseTerminator)
	return m
}

func (m *matcher) run(args []string) ([]Occurrence, error) {
	var result []Occurrence

	for len(args) > 0 {
		claimed := false
		for _, parse := range m.parsers {
			next, consumed, err := parse(args)
			if err != nil {
				return nil, err
			}
			if consumed <= 0 {
				continue
			}
			if consumed > len(args) {
				consumed = len(args)
			}
			args = args[consumed:]

			for i := range next {
				if err := normalizePosition(&next[i]); err != nil {
					return nil, err
				}
				var rest []string
				if i == len(next)-1 {
					rest = args
				}
				taken, err := m.finish(&next[i], rest)
				if err != nil {
					return nil, err
				}
				args = args[taken:]
			}
			result = append(result, next...)
			claimed = true
			break
		}

		if !claimed {
			result = append(result, positionalOccurrence(args[0], false))
			args = args[1:]
		}
	}

	result, err := m.absorbPositional(result)
	if err != nil {
		return nil, err
	}
	return m.assignPositions(result)
}

// finish resolves an occurrence against the catalog and takes the tokens it still needs from rest.
// It returns how many tokens of rest were taken.
func (m *matcher) finish(opt *Occurrence, rest []string) (int, error) {
	if opt.Key == "" {
		return 0, nil
	}

	tokenForErrors := opt.Key
	if len(opt.Original) > 0 {
		tokenForErrors = opt.Original[0]
	}

	taken, err := m.resolve(opt, rest, &tokenForErrors)
	if err != nil {
		return 0, addContext(err, opt.Key, tokenForErrors, m.prefix)
	}
	return taken, nil
}

func (m *matcher) resolve(opt *Occurrence, rest []string, tokenForErrors *string) (int, error) {
	spec, err := m.catalog.Lookup(opt.Key, m.style.Has(AllowGuessing),
		m.style.Has(LongCaseInsensitive), m.style.Has(ShortCaseInsensitive))
	if err != nil {
		return 0, err
	}
	if spec == nil {
		if m.allowUnregistered {
			opt.Unregistered = true
			return 0, nil
		}
		return 0, unknownOptionError(*tokenForErrors)
	}

	opt.Key = spec.Key(opt.Key)
	semantic := spec.Semantic()
	minTokens, maxTokens := semantic.MinTokens(), semantic.MaxTokens()

	if len(opt.Value) > 0 && maxTokens == 0 {
		return 0, syntaxError(SyntaxExtraParameter, "", "", 0)
	}
	if opt.adjacent {
		switch {
		case opt.form == formLong && !m.style.Has(LongAllowAdjacent):
			return 0, syntaxError(SyntaxLongAdjacentNotAllowed, "", "", 0)
		case opt.form == formShort && !m.style.Has(ShortAllowAdjacent):
			return 0, syntaxError(SyntaxShortAdjacentNotAllowed, "", "", 0)
		}
	}

	need := minTokens - len(opt.Value)
	if need <= 0 {
		return 0, nil
	}
	if !m.allowsNext(opt.form) || len(rest) < need {
		return 0, syntaxError(SyntaxMissingParameter, "", "", 0)
	}

	taken := 0
	for ; taken < need; taken++ {
		token := rest[taken]
		isOption, err := m.looksLikeOption(token)
		if err != nil {
			return 0, err
		}
		if isOption {
			*tokenForErrors = token
			return 0, syntaxError(SyntaxMissingParameter, "", "", 0)
		}
		opt.Value = append(opt.Value, token)
		opt.Original = append(opt.Original, token)
	}
	return taken, nil
}

// looksLikeOption reports whether token is spelled like an option and, taken
// literally, names a declared option. Only short spellings such as "-d" can
// match literally, so "--foo" and "-13" are both accepted as values.
func (m *matcher) looksLikeOption(token string) (bool, error) {
	spelled := false
	for _, parse := range m.parsers {
		if _, consumed, err := parse([]string{token}); err == nil && consumed > 0 {
			spelled = true
			break
		}
	}
	if !spelled {
		return false, nil
	}
	spec, err := m.catalog.Lookup(token, m.style.Has(AllowGuessing),
		m.style.Has(LongCaseInsensitive), m.style.Has(ShortCaseInsensitive))
	if err != nil {
		return false, err
	}
	return spec != nil, nil
}

func (m *matcher) allowsNext(form tokenForm) bool {
	switch form {
	case formLong:
		return m.style.Has(LongAllowNext)
	case formShort:
		return m.style.Has(ShortAllowNext)
	}
	return true
}

// absorbPositional lets options that can take more tokens pick up the plain
// positional tokens that follow them, whatever the next-token flags say.
func (m *matcher) absorbPositional(result []Occurrence) ([]Occurrence, error) {
	for i := 0; i < len(result); i++ {
		opt := &result[i]
		if opt.Key == "" || opt.Unregistered {
			continue
		}
		spec, err := m.catalog.Lookup(opt.Key, m.style.Has(AllowGuessing),
			m.style.Has(LongCaseInsensitive), m.style.Has(ShortCaseInsensitive))
		if err != nil {
			return nil, addContext(err, opt.Key, opt.Key, m.prefix)
		}
		if spec == nil {
			continue
		}

		minTokens, maxTokens := spec.Semantic().MinTokens(), spec.Semantic().MaxTokens()
		if minTokens >= maxTokens || len(opt.Value) >= maxTokens {
			continue
		}

		room := maxTokens - len(opt.Value)
		j := i + 1
		for ; room > 0 && j < len(result); j, room = j+1, room-1 {
			next := result[j]
			if next.Key != "" || next.afterDashDash || len(next.Value) == 0 || len(next.Original) == 0 {
				break
			}
			opt.Value = append(opt.Value, next.Value[0])
			opt.Original = append(opt.Original, next.Original[0])
		}
		result = append(result[:i+1], result[j:]...)
	}
	return result, nil
}

// assignPositions numbers positional tokens and binds them to keys when a mapping is set
func (m *matcher) assignPositions(result []Occurrence) ([]Occurrence, error) {
	position := 0
	for i := range result {
		if result[i].Position == -1 {
			continue
		}
		if m.positional != nil {
			if position >= m.positional.MaxTotalCount() {
				return nil, &Error{Kind: ErrTooManyPositional}
			}
			result[i].Key = m.positional.NameForPosition(position)
		}
		result[i].Position = position
		position++
	}
	return result, nil
}

func (m *matcher) parseAdditional(args []string) ([]Occurrence, int, error) {
	name, value := m.extra(args[0])
	if name == "" {
		return nil, 0, nil
	}
	opt := namedOccurrence(name, formOther, args[0])
	if value != "" {
		opt.Value = []string{value}
	}
	return []Occurrence{opt}, 1, nil
}

func (m *matcher) parseLong(args []string) ([]Occurrence, int, error) {
	tok := args[0]
	if len(tok) < 3 || !strings.HasPrefix(tok, "--") {
		return nil, 0, nil
	}

	opt := namedOccurrence(tok[2:], formLong, tok)
	if name, adjacent, found := strings.Cut(tok[2:], "="); found {
		if adjacent == "" {
			return nil, 0, syntaxError(SyntaxEmptyAdjacentParameter, name, name, m.prefix)
		}
		opt.Key = name
		opt.Value = []string{adjacent}
		opt.adjacent = true
	}
	return []Occurrence{opt}, 1, nil
}

// parseDisguisedLong accepts "-name" (and "/name" when slashes are enabled)
// for a name that resolves to an option, then treats it as "--name".
func (m *matcher) parseDisguisedLong(args []string) ([]Occurrence, int, error) {
	tok := args[0]
	if len(tok) < 2 {
		return nil, 0, nil
	}
	dashed := tok[0] == '-' && tok[1] != '-'
	slashed := tok[0] == '/' && m.style.Has(AllowSlashForShort)
	if !dashed && !slashed {
		return nil, 0, nil
	}

	name, _, _ := strings.Cut(tok[1:], "=")

	// an exact short option wins unless the whole name is spelled out
	shortStyle := m.style.Has(AllowShort) && (slashed || m.style.Has(AllowDashForShort))
	if shortStyle && m.hasShort(tok) {
		exact, err := m.catalog.Lookup(name, false,
			m.style.Has(LongCaseInsensitive), m.style.Has(ShortCaseInsensitive))
		if err != nil || exact == nil {
			return nil, 0, nil
		}
	}

	spec, err := m.catalog.Lookup(name, m.style.Has(AllowGuessing),
		m.style.Has(LongCaseInsensitive), m.style.Has(ShortCaseInsensitive))
	if err != nil {
		return nil, 0, addContext(err, name, tok, m.prefix)
	}
	if spec == nil {
		return nil, 0, nil
	}

	next, consumed, err := m.parseLong([]string{"--" + tok[1:]})
	if err != nil || consumed == 0 {
		return nil, 0, err
	}
	for i := range next {
		next[i].Original = []string{tok}
	}
	return next, 1, nil
}

// hasShort reports whether the first letter after the prefix of tok is a declared short name
func (m *matcher) hasShort(tok string) bool {
	r := []rune(tok)
	if len(r) < 2 {
		return false
	}
	short := "-" + string(r[1])
	for _, opt := range m.catalog.Options() {
		name := opt.ShortName()
		if name == short || name != "" && m.style.Has(ShortCaseInsensitive) && fold(name) == fold(short) {
			return true
		}
	}
	return false
}

// parseShort handles "-x", "-xvalue" and, with AllowSticky, bundles such as "-abc".
// A negative number that names no short option is left for the positional tokens.
func (m *matcher) parseShort(args []string) ([]Occurrence, int, error) {
	tok := args[0]
	if len(tok) < 2 || tok[0] != '-' || tok[1] == '-' {
		return nil, 0, nil
	}

	var result []Occurrence
	r := []rune(tok)
	name, adjacent := string(r[:2]), string(r[2:])
	if isNumber(tok[1:]) && !m.hasShort(tok) {
		return nil, 0, nil
	}
	for {
		spec, err := m.catalog.Lookup(name, false, false, m.style.Has(ShortCaseInsensitive))
		if err != nil {
			return nil, 0, addContext(err, name, name, m.prefix)
		}

		if spec != nil && m.style.Has(AllowSticky) && spec.Semantic().MaxTokens() == 0 && adjacent != "" {
			result = append(result, namedOccurrence(name, formShort))
			r := []rune(adjacent)
			name, adjacent = "-"+string(r[0]), string(r[1:])
			continue
		}

		opt := namedOccurrence(name, formShort, tok)
		if adjacent != "" {
			opt.Value = []string{adjacent}
			opt.adjacent = true
		}
		result = append(result, opt)
		return result, 1, nil
	}
}

// parseSlash handles "/x" and "/xvalue"
func (m *matcher) parseSlash(args []string) ([]Occurrence, int, error) {
	tok := args[0]
	if len(tok) < 2 || tok[0] != '/' {
		return nil, 0, nil
	}
	r := []rune(tok[1:])
	opt := namedOccurrence("-"+string(r[0]), formShort, tok)
	if len(r) > 1 {
		opt.Value = []string{string(r[1:])}
		opt.adjacent = true
	}
	return []Occurrence{opt}, 1, nil
}

// parseTerminator turns everything after "--" into positional tokens
func (m *matcher) parseTerminator(args []string) ([]Occurrence, int, error) {
	if args[0] != "--" {
		return nil, 0, nil
	}
	result := make([]Occurrence, 0, len(args)-1)
	for _, tok := range args[1:] {
		result = append(result, positionalOccurrence(tok, true))
	}
	return result, len(args), nil
}

func namedOccurrence(key string, form tokenForm, original ...string) Occurrence {
	return Occurrence{Key: key, Position: -1, Original: original, form: form}
}

// isNumber reports whether s is a plain decimal number such as "5" or ".25"
func isNumber(s string) bool {
	if s == "" || !(s[0] == '.' || s[0] >= '0' && s[0] <= '9') {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// normalizePosition marks occurrences from custom parsers as named or positional by key.
// A positional occurrence must carry its token; Original defaults to Value.
func normalizePosition(opt *Occurrence) error {
	if opt.Key != "" {
		opt.Position = -1
		return nil
	}
	if len(opt.Value) != 1 {
		return &Error{Kind: ErrInvalidSyntax,
			Message: fmt.Sprintf("positional occurrence must carry exactly one token, got %d", len(opt.Value))}
	}
	if len(opt.Original) == 0 {
		opt.Original = append([]string(nil), opt.Value...)
	}
	if opt.Position < 0 {
		opt.Position = 0
	}
	return nil
}
