// FILE: lixenwraith/options/configfile.go
package options

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const configWhitespace = " \t\r\n"

// ParseConfig reads an INI-like options file:
//
//	# comment
//	name = value
//	[section]
//	key = value   # stored as "section.key"
//
// Only long option names are accepted. A name ending in '*' accepts every key
// beginning with the rest of the name.
func ParseConfig(r io.Reader, catalog *Catalog, allowUnregistered bool) (*ParseResult, error) {
	if catalog == nil {
		catalog = NewCatalog("")
	}
	if err := catalog.Err(); err != nil {
		return nil, err
	}

	allowed, err := newAllowedNames(catalog)
	if err != nil {
		return nil, err
	}

	// BOM-aware decoding, UTF-8 unless a UTF-16 BOM says otherwise
	decoded := transform.NewReader(r, xunicode.BOMOverride(xunicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)

	result := &ParseResult{Catalog: catalog}
	prefix := ""
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.Trim(line, configWhitespace)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			prefix = line[1 : len(line)-1]
			if !strings.HasSuffix(prefix, ".") {
				prefix += "."
			}
			continue
		}

		name, value, found := strings.Cut(line, "=")
		if !found {
			e := syntaxError(SyntaxUnrecognizedLine, "", "", 0)
			e.Value = line
			e.Line = lineNo
			return nil, e
		}

		name = prefix + strings.Trim(name, configWhitespace)
		value = strings.Trim(value, configWhitespace)

		registered := allowed.allowed(name)
		if !registered && !allowUnregistered {
			e := unknownOptionError(name)
			e.Line = lineNo
			return nil, e
		}

		result.Options = append(result.Options, Occurrence{
			Key:          name,
			Position:     -1,
			Value:        []string{value},
			Original:     []string{name, value},
			Unregistered: !registered,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options configuration: %w", err)
	}

	return result, nil
}

// ParseConfigFile opens path and parses it with ParseConfig
func ParseConfigFile(path string, catalog *Catalog, allowUnregistered bool) (*ParseResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: ErrReadingFile, Value: path, Err: err}
	}
	defer file.Close()

	result, err := ParseConfig(file, catalog, allowUnregistered)
	if err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return nil, &Error{Kind: ErrReadingFile, Value: path, Err: err}
		}
		return nil, err
	}
	return result, nil
}

// allowedNames is the set of keys a configuration file may use
type allowedNames struct {
	names    map[string]struct{}
	prefixes []string // sorted; no entry is a prefix of another
}

func newAllowedNames(catalog *Catalog) (*allowedNames, error) {
	var names []string
	for _, opt := range catalog.Options() {
		if opt.LongName() == "" {
			return nil, &Error{Kind: ErrInvalidCatalog,
				Message: "abbreviated option names are not permitted in options configuration files"}
		}
		names = append(names, opt.LongNames()...)
	}

	// Sorted, so a wildcard conflict is always reported from the longer prefix
	sort.Strings(names)
	a := &allowedNames{names: make(map[string]struct{})}
	for _, name := range names {
		if err := a.add(name); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *allowedNames) add(name string) error {
	if !strings.HasSuffix(name, "*") {
		a.names[name] = struct{}{}
		return nil
	}

	s := strings.TrimSuffix(name, "*")
	i := sort.SearchStrings(a.prefixes, s)

	conflict, clash := "", false
	if i < len(a.prefixes) && strings.HasPrefix(a.prefixes[i], s) {
		conflict, clash = a.prefixes[i], true
	} else if i > 0 && strings.HasPrefix(s, a.prefixes[i-1]) {
		conflict, clash = a.prefixes[i-1], true
	}
	if clash {
		return &Error{Kind: ErrInvalidCatalog, Message: fmt.Sprintf(
			"options '%s' and '%s*' will both match the same arguments from the configuration file", name, conflict)}
	}

	a.prefixes = append(a.prefixes, "")
	copy(a.prefixes[i+1:], a.prefixes[i:])
	a.prefixes[i] = s
	return nil
}

func (a *allowedNames) allowed(name string) bool {
	if _, ok := a.names[name]; ok {
		return true
	}
	// The only prefix that can match is the greatest one not above name
	i := sort.SearchStrings(a.prefixes, name)
	if i < len(a.prefixes) && a.prefixes[i] == name {
		return true
	}
	return i > 0 && strings.HasPrefix(name, a.prefixes[i-1])
}
