// FILE: lixenwraith/options/value.go
package options

import (
	"fmt"
	"math"
)

// Unbounded is the MaxTokens of a multitoken value
const Unbounded = math.MaxInt32

const defaultValueName = "arg"

// ValueSemantic describes how many tokens an option takes and how they become a value.
type ValueSemantic interface {
	// Name is the placeholder shown in help output, e.g. "arg (=10)"
	Name() string
	MinTokens() int
	MaxTokens() int
	IsComposing() bool
	IsRequired() bool
	// Parse folds tokens into current (nil when the option has no value yet)
	// and returns the new value.
	Parse(current any, tokens []string) (any, error)
	// ApplyDefault returns the declared default, if any
	ApplyDefault() (any, bool)
	// Notify delivers the final value to the write-back target and notifier
	Notify(value any) error
}

// TypedValue is the ValueSemantic for values of type T.
// Modifiers return the receiver so declarations can be chained.
type TypedValue[T any] struct {
	target   *T
	validate func(current any, tokens []string) (T, error)

	defaultValue  *T
	defaultText   string
	implicitValue *T
	implicitText  string
	valueName     string
	notifier      func(T)

	composing  bool
	required   bool
	multitoken bool
	zeroTokens bool
}

// Value declares a single-occurrence value converted from one token.
// Supported types: string, bool, all integer and float kinds, time.Duration,
// ByteSize, uuid.UUID and any type whose pointer implements encoding.TextUnmarshaler.
// target, if non-nil, receives the final value on Notify.
func Value[T any](target *T) *TypedValue[T] {
	v := ValueFunc(target, converterFor[T]())
	if isBool[T]() {
		v.validate = v.validateBool
	}
	return v
}

// ValueFunc declares a single-occurrence value with a custom conversion
func ValueFunc[T any](target *T, parse func(string) (T, error)) *TypedValue[T] {
	v := &TypedValue[T]{target: target}
	v.validate = func(current any, tokens []string) (T, error) {
		var zero T
		if current != nil {
			return zero, validationError(ErrMultipleOccurrences, "")
		}
		s, err := singleToken(tokens, false)
		if err != nil {
			return zero, err
		}
		return convertToken(s, parse)
	}
	return v
}

// Slice declares a sequence value; every token is converted and appended
func Slice[E any](target *[]E) *TypedValue[[]E] {
	return SliceFunc(target, converterFor[E]())
}

// SliceFunc declares a sequence value with a custom element conversion
func SliceFunc[E any](target *[]E, parse func(string) (E, error)) *TypedValue[[]E] {
	v := &TypedValue[[]E]{target: target}
	v.validate = func(current any, tokens []string) ([]E, error) {
		var out []E
		if current != nil {
			if !v.composing {
				return nil, validationError(ErrMultipleOccurrences, "")
			}
			prev, ok := current.([]E)
			if !ok {
				return nil, &Error{Kind: ErrTypeMismatch, Message: fmt.Sprintf("cannot append to stored value of type %T", current)}
			}
			out = append(out, prev...)
		}
		for _, token := range tokens {
			elem, err := convertToken(token, parse)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	}
	return v
}

// Optional declares a value that may appear at most once; an absent option stays unset.
func Optional[E any](target **E) *TypedValue[*E] {
	parse := converterFor[E]()
	v := &TypedValue[*E]{target: target}
	v.validate = func(current any, tokens []string) (*E, error) {
		if current != nil {
			return nil, validationError(ErrMultipleOccurrences, "")
		}
		s, err := singleToken(tokens, false)
		if err != nil {
			return nil, err
		}
		elem, err := convertToken(s, parse)
		if err != nil {
			return nil, err
		}
		return &elem, nil
	}
	return v
}

// Switch declares a presence-only bool that defaults to false
func Switch(target *bool) *TypedValue[bool] {
	return Value(target).Default(false).ZeroTokens()
}

// Untyped declares a raw string value. With zeroTokens it is a presence-only flag.
func Untyped(zeroTokens bool) *TypedValue[string] {
	v := &TypedValue[string]{zeroTokens: zeroTokens}
	v.validate = func(current any, tokens []string) (string, error) {
		if current != nil {
			return "", validationError(ErrMultipleOccurrences, "")
		}
		if len(tokens) > 1 {
			return "", validationError(ErrMultipleValues, "")
		}
		if len(tokens) == 0 {
			return "", nil
		}
		return tokens[0], nil
	}
	return v
}

// Default sets the value used when no source supplies one
func (v *TypedValue[T]) Default(value T) *TypedValue[T] {
	return v.DefaultText(value, fmt.Sprint(value))
}

// DefaultText sets the default with an explicit help rendering
func (v *TypedValue[T]) DefaultText(value T, text string) *TypedValue[T] {
	v.defaultValue = &value
	v.defaultText = text
	return v
}

// Implicit sets the value used when the option appears without tokens
func (v *TypedValue[T]) Implicit(value T) *TypedValue[T] {
	return v.ImplicitText(value, fmt.Sprint(value))
}

// ImplicitText sets the implicit value with an explicit help rendering
func (v *TypedValue[T]) ImplicitText(value T, text string) *TypedValue[T] {
	v.implicitValue = &value
	v.implicitText = text
	return v
}

// ValueName sets the placeholder shown in help output
func (v *TypedValue[T]) ValueName(name string) *TypedValue[T] {
	v.valueName = name
	return v
}

// Notifier registers a callback receiving the final value on Notify
func (v *TypedValue[T]) Notifier(fn func(T)) *TypedValue[T] {
	v.notifier = fn
	return v
}

// Composing makes values from several occurrences and sources accumulate
func (v *TypedValue[T]) Composing() *TypedValue[T] {
	v.composing = true
	return v
}

// Multitoken lets one occurrence take any number of tokens
func (v *TypedValue[T]) Multitoken() *TypedValue[T] {
	v.multitoken = true
	return v
}

// ZeroTokens makes the option take no tokens at all
func (v *TypedValue[T]) ZeroTokens() *TypedValue[T] {
	v.zeroTokens = true
	return v
}

// Required makes Notify fail when no source supplied the option
func (v *TypedValue[T]) Required() *TypedValue[T] {
	v.required = true
	return v
}

func (v *TypedValue[T]) Name() string {
	name := v.valueName
	if name == "" {
		name = defaultValueName
	}
	if v.implicitValue != nil && v.implicitText != "" {
		msg := "[=" + name + "(=" + v.implicitText + ")]"
		if v.defaultValue != nil && v.defaultText != "" {
			msg += " (=" + v.defaultText + ")"
		}
		return msg
	}
	if v.defaultValue != nil && v.defaultText != "" {
		return name + " (=" + v.defaultText + ")"
	}
	return name
}

func (v *TypedValue[T]) MinTokens() int {
	if v.zeroTokens || v.implicitValue != nil {
		return 0
	}
	return 1
}

func (v *TypedValue[T]) MaxTokens() int {
	if v.multitoken {
		return Unbounded
	}
	if v.zeroTokens {
		return 0
	}
	return 1
}

func (v *TypedValue[T]) IsComposing() bool { return v.composing }

func (v *TypedValue[T]) IsRequired() bool { return v.required }

func (v *TypedValue[T]) Parse(current any, tokens []string) (any, error) {
	if len(tokens) == 0 && v.implicitValue != nil {
		return *v.implicitValue, nil
	}
	out, err := v.validate(current, tokens)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (v *TypedValue[T]) ApplyDefault() (any, bool) {
	if v.defaultValue == nil {
		return nil, false
	}
	return *v.defaultValue, true
}

func (v *TypedValue[T]) Notify(value any) error {
	typed, ok := value.(T)
	if !ok {
		var zero T
		return &Error{Kind: ErrTypeMismatch, Message: fmt.Sprintf("value of type %T delivered to option of type %T", value, zero)}
	}
	if v.target != nil {
		*v.target = typed
	}
	if v.notifier != nil {
		v.notifier(typed)
	}
	return nil
}

// validateBool accepts zero tokens as true; "" is true only for declared zero-token switches
func (v *TypedValue[T]) validateBool(current any, tokens []string) (T, error) {
	var zero T
	if current != nil {
		return zero, validationError(ErrMultipleOccurrences, "")
	}
	var b bool
	if len(tokens) == 0 {
		b = true
	} else {
		s, err := singleToken(tokens, true)
		if err != nil {
			return zero, err
		}
		if s == "" && v.zeroTokens {
			b = true
		} else if b, err = parseBoolText(s); err != nil {
			return zero, err
		}
	}
	out, _ := any(b).(T)
	return out, nil
}

// singleToken enforces exactly one token (or at most one when allowEmpty)
func singleToken(tokens []string, allowEmpty bool) (string, error) {
	if len(tokens) > 1 {
		return "", validationError(ErrMultipleValues, "")
	}
	if len(tokens) == 0 {
		if !allowEmpty {
			return "", validationError(ErrAtLeastOneValue, "")
		}
		return "", nil
	}
	return tokens[0], nil
}

// convertToken runs a conversion and maps failures to ErrInvalidOptionValue,
// keeping richer *Error results from custom conversions intact.
func convertToken[T any](s string, parse func(string) (T, error)) (T, error) {
	out, err := parse(s)
	if err != nil {
		var zero T
		if e, ok := err.(*Error); ok {
			if e.Value == "" {
				e.Value = s
			}
			return zero, e
		}
		e := validationError(ErrInvalidOptionValue, s)
		e.Err = err
		return zero, e
	}
	return out, nil
}
