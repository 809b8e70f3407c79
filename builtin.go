package bracefmt

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

func init() {
	Register(renderTime)
}

// primitive returns the built-in renderer for numeric, bool, string and byte
// slice kinds, or nil when t has none of those kinds.
func primitive(t reflect.Type) renderFunc {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v any, a Appender, options string) (int, error) {
			return appendInt(a, reflect.ValueOf(v).Int(), options)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(v any, a Appender, options string) (int, error) {
			return appendUint(a, reflect.ValueOf(v).Uint(), options)
		}
	case reflect.Float32, reflect.Float64:
		bits := t.Bits()
		return func(v any, a Appender, options string) (int, error) {
			return appendFloat(a, reflect.ValueOf(v).Float(), bits, options)
		}
	case reflect.Bool:
		return func(v any, a Appender, _ string) (int, error) {
			var buf [5]byte
			return appendOut(a, strconv.AppendBool(buf[:0], reflect.ValueOf(v).Bool()))
		}
	case reflect.String:
		return func(v any, a Appender, _ string) (int, error) {
			return appendText(a, reflect.ValueOf(v).String())
		}
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return func(v any, a Appender, _ string) (int, error) {
				return appendOut(a, reflect.ValueOf(v).Bytes())
			}
		}
	}
	return nil
}

// Integer options select the base:
//
//	d (or empty)  decimal
//	x, X          hexadecimal, lower or upper case digits
//	o             octal
//	b             binary
func intBase(options string) (base int, upper bool, err error) {
	switch options {
	case "", "d":
		return 10, false, nil
	case "x":
		return 16, false, nil
	case "X":
		return 16, true, nil
	case "o":
		return 8, false, nil
	case "b":
		return 2, false, nil
	}
	return 0, false, fmt.Errorf("%w: %q for integer", ErrInvalidOptions, options)
}

func appendInt(a Appender, v int64, options string) (int, error) {
	base, upper, err := intBase(options)
	if err != nil {
		return 0, err
	}
	var buf [65]byte
	out := strconv.AppendInt(buf[:0], v, base)
	if upper {
		toUpper(out)
	}
	return appendOut(a, out)
}

func appendUint(a Appender, v uint64, options string) (int, error) {
	base, upper, err := intBase(options)
	if err != nil {
		return 0, err
	}
	var buf [64]byte
	out := strconv.AppendUint(buf[:0], v, base)
	if upper {
		toUpper(out)
	}
	return appendOut(a, out)
}

// Float options are a verb out of f, e, E, g, G followed by an optional
// precision, for example "f2" or "e". Empty options use the shortest
// representation that round-trips.
func appendFloat(a Appender, v float64, bits int, options string) (int, error) {
	verb, prec := byte('g'), -1
	if options != "" {
		switch options[0] {
		case 'f', 'e', 'E', 'g', 'G':
			verb = options[0]
		default:
			return 0, fmt.Errorf("%w: %q for float", ErrInvalidOptions, options)
		}
		if len(options) > 1 {
			p, err := strconv.Atoi(options[1:])
			if err != nil || p < 0 {
				return 0, fmt.Errorf("%w: %q for float", ErrInvalidOptions, options)
			}
			prec = p
		}
	}
	var buf [64]byte
	return appendOut(a, strconv.AppendFloat(buf[:0], v, verb, prec, bits))
}

// renderTime treats options as a time layout, defaulting to RFC 3339.
func renderTime(t time.Time, a Appender, options string) (int, error) {
	layout := time.RFC3339
	if options != "" {
		layout = options
	}
	var buf [64]byte
	return appendOut(a, t.AppendFormat(buf[:0], layout))
}

func appendOut(a Appender, out []byte) (int, error) {
	if err := a.AppendBytes(out); err != nil {
		return 0, err
	}
	return len(out), nil
}

func toUpper(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}
