// FILE: lixenwraith/options/convert.go
package options

import (
	"encoding"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ByteSize is a byte count written with units, e.g. "64MB" or "1.5 GiB"
type ByteSize uint64

// String renders the size with IEC units
func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}

// UnmarshalText parses a human-readable size
func (b *ByteSize) UnmarshalText(text []byte) error {
	n, err := humanize.ParseBytes(string(text))
	if err != nil {
		return err
	}
	*b = ByteSize(n)
	return nil
}

// ParseByteSize parses a human-readable size
func ParseByteSize(s string) (ByteSize, error) {
	var b ByteSize
	err := b.UnmarshalText([]byte(s))
	return b, err
}

// converterFor returns the textual conversion used by Value[T] and Slice[T].
// Conversions are locale-independent: integers are base 10, floats use '.'.
func converterFor[T any]() func(string) (T, error) {
	var zero T
	var conv func(string) (any, error)

	switch any(zero).(type) {
	case string:
		conv = func(s string) (any, error) { return s, nil }
	case bool:
		conv = func(s string) (any, error) { return parseBoolText(s) }
	case time.Duration:
		conv = func(s string) (any, error) { return time.ParseDuration(s) }
	case ByteSize:
		conv = func(s string) (any, error) { return ParseByteSize(s) }
	case uuid.UUID:
		conv = func(s string) (any, error) { return uuid.Parse(s) }
	case int:
		conv = signed(strconv.IntSize, func(n int64) any { return int(n) })
	case int8:
		conv = signed(8, func(n int64) any { return int8(n) })
	case int16:
		conv = signed(16, func(n int64) any { return int16(n) })
	case int32:
		conv = signed(32, func(n int64) any { return int32(n) })
	case int64:
		conv = signed(64, func(n int64) any { return n })
	case uint:
		conv = unsigned(strconv.IntSize, func(n uint64) any { return uint(n) })
	case uint8:
		conv = unsigned(8, func(n uint64) any { return uint8(n) })
	case uint16:
		conv = unsigned(16, func(n uint64) any { return uint16(n) })
	case uint32:
		conv = unsigned(32, func(n uint64) any { return uint32(n) })
	case uint64:
		conv = unsigned(64, func(n uint64) any { return n })
	case float32:
		conv = func(s string) (any, error) {
			f, err := strconv.ParseFloat(s, 32)
			return float32(f), err
		}
	case float64:
		conv = func(s string) (any, error) { return strconv.ParseFloat(s, 64) }
	}

	if conv != nil {
		return func(s string) (T, error) {
			v, err := conv(s)
			if err != nil {
				return zero, err
			}
			out, _ := v.(T)
			return out, nil
		}
	}

	// Fall back to encoding.TextUnmarshaler (net.IP, custom enums, ...)
	if _, ok := any(&zero).(encoding.TextUnmarshaler); ok {
		return func(s string) (T, error) {
			var out T
			if err := any(&out).(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return zero, err
			}
			return out, nil
		}
	}

	return func(string) (T, error) {
		return zero, fmt.Errorf("no conversion from text to %T", zero)
	}
}

func signed(bits int, wrap func(int64) any) func(string) (any, error) {
	return func(s string) (any, error) {
		n, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return nil, err
		}
		return wrap(n), nil
	}
}

func unsigned(bits int, wrap func(uint64) any) func(string) (any, error) {
	return func(s string) (any, error) {
		n, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return nil, err
		}
		return wrap(n), nil
	}
}

// parseBoolText accepts on/off, yes/no, 1/0 and true/false in any case
func parseBoolText(s string) (bool, error) {
	switch fold(s) {
	case "on", "yes", "1", "true":
		return true, nil
	case "off", "no", "0", "false":
		return false, nil
	}
	return false, validationError(ErrInvalidBoolValue, s)
}

func isBool[T any]() bool {
	var zero T
	_, ok := any(zero).(bool)
	return ok
}
