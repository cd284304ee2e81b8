// FILE: lixenwraith/options/settings.go
package options

import (
	"errors"
	"sort"
	"strings"
)

// VariableValue is one stored setting
type VariableValue struct {
	value     any
	defaulted bool
	semantic  ValueSemantic
}

// Value returns the stored value, nil when empty
func (v VariableValue) Value() any {
	return v.value
}

// Defaulted reports whether the value came from a declared default
func (v VariableValue) Defaulted() bool {
	return v.defaulted
}

// Empty reports whether no value is stored
func (v VariableValue) Empty() bool {
	return v.value == nil
}

// Settings is the merged table of option values.
// It is not safe for concurrent use.
type Settings struct {
	values   map[string]VariableValue
	final    map[string]struct{}
	required map[string]string // key -> name shown when missing
	declared map[string]ValueSemantic
	next     *Settings
}

// NewSettings creates an empty settings table
func NewSettings() *Settings {
	return &Settings{
		values:   make(map[string]VariableValue),
		final:    make(map[string]struct{}),
		required: make(map[string]string),
		declared: make(map[string]ValueSemantic),
	}
}

// NewSettingsChained creates a table that falls back to next for keys it does not hold
func NewSettingsChained(next *Settings) *Settings {
	s := NewSettings()
	s.next = next
	return s
}

// Store merges one parse result into the table.
//
// A key that received an explicit value from an earlier Store call keeps it
// and later values are ignored, unless the option is composing, in which case
// values accumulate in call order. Within a single call, repeated occurrences
// go through the option's semantic, so a scalar given twice fails with
// ErrMultipleOccurrences.
func (s *Settings) Store(result *ParseResult) error {
	if result == nil {
		return nil
	}
	catalog := result.Catalog
	if catalog == nil {
		catalog = NewCatalog("")
	}

	newFinal := make(map[string]struct{})
	for _, occ := range result.Options {
		if occ.Key == "" || occ.Unregistered {
			continue
		}
		token := occ.Key
		if len(occ.Original) > 0 {
			token = occ.Original[0]
		}

		// aliases are final under the key they are stored at
		opt, err := catalog.Find(occ.Key, false, false, false)
		if err != nil {
			return addContext(err, occ.Key, token, result.Prefix)
		}
		key := opt.Key(occ.Key)
		if _, done := s.final[key]; done {
			continue
		}
		if err := s.storeOccurrence(opt, key, occ, newFinal); err != nil {
			return addContext(err, occ.Key, token, result.Prefix)
		}
	}
	for key := range newFinal {
		s.final[key] = struct{}{}
	}

	for _, opt := range catalog.Options() {
		key := opt.Key("")
		if key == "" || strings.Contains(key, "*") {
			continue
		}
		semantic := opt.Semantic()
		s.declared[key] = semantic

		if _, exists := s.values[key]; !exists {
			if def, ok := semantic.ApplyDefault(); ok {
				s.values[key] = VariableValue{value: def, defaulted: true, semantic: semantic}
			}
		}

		if semantic.IsRequired() {
			display := opt.CanonicalDisplayName(result.Prefix)
			if len(display) > len(s.required[key]) {
				s.required[key] = display
			}
		}
	}
	return nil
}

func (s *Settings) storeOccurrence(opt *Option, key string, occ Occurrence, newFinal map[string]struct{}) error {
	semantic := opt.Semantic()

	current := s.values[key]
	if current.defaulted {
		current = VariableValue{}
	}

	value, err := semantic.Parse(current.value, occ.Value)
	if err != nil {
		return err
	}
	s.values[key] = VariableValue{value: value, semantic: semantic}

	if !semantic.IsComposing() {
		newFinal[key] = struct{}{}
	}
	return nil
}

// Notify checks required options and delivers final values to their
// write-back targets and notifiers. Defaults not yet applied are applied first.
func (s *Settings) Notify() error {
	for key, semantic := range s.declared {
		if _, exists := s.values[key]; exists {
			continue
		}
		if def, ok := semantic.ApplyDefault(); ok {
			s.values[key] = VariableValue{value: def, defaulted: true, semantic: semantic}
		}
	}

	requiredKeys := make([]string, 0, len(s.required))
	for key := range s.required {
		requiredKeys = append(requiredKeys, key)
	}
	sort.Strings(requiredKeys)
	for _, key := range requiredKeys {
		if v, ok := s.values[key]; !ok || v.Empty() {
			return &Error{Kind: ErrRequiredOption, Option: key, OriginalToken: s.required[key]}
		}
	}

	var errs []error
	for _, key := range s.Keys() {
		v := s.values[key]
		if v.semantic == nil {
			continue
		}
		if err := v.semantic.Notify(v.value); err != nil {
			errs = append(errs, addContext(err, key, key, 0))
		}
	}
	return errors.Join(errs...)
}

// Get returns the value for key. A missing or defaulted value falls back to the
// chained table when that table holds an explicit value.
func (s *Settings) Get(key string) VariableValue {
	v := s.values[key]
	if s.next == nil {
		return v
	}
	if v.Empty() {
		return s.next.Get(key)
	}
	if v.defaulted {
		if nv := s.next.Get(key); !nv.Empty() && !nv.defaulted {
			return nv
		}
	}
	return v
}

// Count returns 1 when this table holds key, 0 otherwise. Chained tables are not consulted.
func (s *Settings) Count(key string) int {
	if _, ok := s.values[key]; ok {
		return 1
	}
	return 0
}

// Keys returns the keys held by this table, sorted
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys held by this table
func (s *Settings) Len() int {
	return len(s.values)
}

// Clear removes all values, including the record of which keys are final
func (s *Settings) Clear() {
	s.values = make(map[string]VariableValue)
	s.final = make(map[string]struct{})
	s.required = make(map[string]string)
	s.declared = make(map[string]ValueSemantic)
}
