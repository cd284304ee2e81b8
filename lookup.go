// File: lixenwraith/options/lookup.go
package options

import (
	"fmt"
	"reflect"
	"strconv"
)

// As returns the value as T, failing with ErrTypeMismatch for empty or differently typed values
func As[T any](v VariableValue) (T, error) {
	var zero T
	if v.Empty() {
		return zero, &Error{Kind: ErrTypeMismatch, Message: fmt.Sprintf("no value stored, wanted %T", zero)}
	}
	typed, ok := v.value.(T)
	if !ok {
		return zero, &Error{Kind: ErrTypeMismatch, Message: fmt.Sprintf("stored value has type %T, wanted %T", v.value, zero)}
	}
	return typed, nil
}

// Lookup returns the value of key as T
func Lookup[T any](s *Settings, key string) (T, error) {
	v, err := As[T](s.Get(key))
	if err != nil {
		return v, fmt.Errorf("option %q: %w", key, err)
	}
	return v, nil
}

// String returns the value of key rendered as a string.
// Unlike Lookup, common scalar types are converted.
func (s *Settings) String(key string) (string, error) {
	v := s.Get(key)
	if v.Empty() {
		return "", fmt.Errorf("option %q has no value", key)
	}
	val := v.value

	switch t := val.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	case []byte:
		return string(t), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	}
	return "", fmt.Errorf("cannot convert type %T to string for option %q", val, key)
}

// Int64 returns the value of key as an int64, converting numbers, numeric strings and bools
func (s *Settings) Int64(key string) (int64, error) {
	v := s.Get(key)
	if v.Empty() {
		return 0, fmt.Errorf("option %q has no value", key)
	}
	val := v.value

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > uint64(^uint64(0)>>1) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d to int64 for option %q: overflow", u, key)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), nil
	case reflect.String:
		str := rv.String()
		i, err := strconv.ParseInt(str, 0, 64)
		if err == nil {
			return i, nil
		}
		if f, ferr := strconv.ParseFloat(str, 64); ferr == nil {
			return int64(f), nil
		}
		return 0, fmt.Errorf("cannot convert string %q to int64 for option %q: %w", str, key, err)
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int64 for option %q", val, key)
}

// Bool returns the value of key as a bool. Strings use the same spellings as bool options.
func (s *Settings) Bool(key string) (bool, error) {
	v := s.Get(key)
	if v.Empty() {
		return false, fmt.Errorf("option %q has no value", key)
	}
	val := v.value

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		b, err := parseBoolText(rv.String())
		if err != nil {
			return false, fmt.Errorf("cannot convert string %q to bool for option %q: %w", rv.String(), key, err)
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool for option %q", val, key)
}

// Float64 returns the value of key as a float64
func (s *Settings) Float64(key string) (float64, error) {
	v := s.Get(key)
	if v.Empty() {
		return 0, fmt.Errorf("option %q has no value", key)
	}
	val := v.value

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(rv.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64 for option %q: %w", rv.String(), key, err)
		}
		return f, nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for option %q", val, key)
}
