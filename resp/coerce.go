package resp

import (
	"strconv"
	"strings"
)

// Strict accessors. Each returns a CoercionError (or ErrNil) when the
// variant cannot represent the target. These back the scalar contracts of
// the public API; a failure here is surfaced to the caller unchanged.

// Str returns the value as text. Binary data crosses the representation
// boundary here and nowhere else; Go strings preserve the bytes exactly.
func (v Value) Str() (string, error) {
	switch v.kind {
	case KindText:
		return v.str, nil
	case KindBinary:
		return string(v.bin), nil
	case KindNil:
		return "", ErrNil
	}
	return "", coercionErr("string", v)
}

// Bytes returns the value as a byte slice. Binary values come back as-is,
// with no encoding step of any kind; text values yield their UTF-8 bytes.
func (v Value) Bytes() ([]byte, error) {
	switch v.kind {
	case KindBinary:
		return v.bin, nil
	case KindText:
		return []byte(v.str), nil
	case KindNil:
		return nil, ErrNil
	}
	return nil, coercionErr("bytes", v)
}

// Int64 returns the numeric value of an integer, double, boolean, or
// numeric-looking textual value.
func (v Value) Int64() (int64, error) {
	switch v.kind {
	case KindInt, KindBool:
		return v.num, nil
	case KindDouble:
		return int64(v.fnum), nil
	case KindText, KindBinary:
		s := v.StringValue()
		switch strings.ToLower(s) {
		case "true":
			return 1, nil
		case "false":
			return 0, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, coercionErr("int64", v)
		}
		return n, nil
	case KindNil:
		return 0, ErrNil
	}
	return 0, coercionErr("int64", v)
}

// Float64 returns the numeric value of an integer, double, or
// numeric-looking textual value.
func (v Value) Float64() (float64, error) {
	switch v.kind {
	case KindDouble:
		return v.fnum, nil
	case KindInt:
		return float64(v.num), nil
	case KindText, KindBinary:
		f, err := strconv.ParseFloat(v.StringValue(), 64)
		if err != nil {
			return 0, coercionErr("float64", v)
		}
		return f, nil
	case KindNil:
		return 0, ErrNil
	}
	return 0, coercionErr("float64", v)
}

// CountBool interprets an idempotence-flag reply: exactly 1 means true and
// exactly 0 means false. Any other number is a coercion error. This is
// deliberately distinct from NonZeroBool; the two conventions must not be
// conflated.
func (v Value) CountBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.num != 0, nil
	case KindInt:
		switch v.num {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, coercionErr("count flag", v)
	case KindDouble:
		switch v.fnum {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, coercionErr("count flag", v)
	case KindText, KindBinary:
		switch strings.ToLower(v.StringValue()) {
		case "1", "true":
			return true, nil
		case "0", "false":
			return false, nil
		}
		return false, coercionErr("count flag", v)
	case KindNil:
		return false, ErrNil
	}
	return false, coercionErr("count flag", v)
}

// NonZeroBool is the general truthiness conversion: any non-zero numeric
// value is true. A nil value is false, not an error.
func (v Value) NonZeroBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.num != 0, nil
	case KindInt:
		return v.num != 0, nil
	case KindDouble:
		return v.fnum != 0, nil
	case KindText, KindBinary:
		switch strings.ToLower(v.StringValue()) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		f, err := strconv.ParseFloat(v.StringValue(), 64)
		if err != nil {
			return false, coercionErr("bool", v)
		}
		return f != 0, nil
	case KindNil:
		return false, nil
	}
	return false, coercionErr("bool", v)
}

// Forgiving converters. These never fail: any shape mismatch, including a
// nil value, yields the empty collection. They protect callers against
// response-shape drift across server and protocol versions.

// unwrapSingleton handles the single-element wrapper some deployments put
// around array replies: [ [a, b, c] ] flattens to [a, b, c].
func unwrapSingleton(v Value) Value {
	if v.kind == KindArray && len(v.arr) == 1 && v.arr[0].kind == KindArray {
		return v.arr[0]
	}
	return v
}

// ToValueSlice returns the elements of a sequence, or an empty slice for
// any other shape.
func ToValueSlice(v Value) []Value {
	v = unwrapSingleton(v)
	if v.kind != KindArray {
		return []Value{}
	}
	return v.arr
}

// ToStringSlice renders every element of a sequence as text.
func ToStringSlice(v Value) []string {
	elems := ToValueSlice(v)
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = e.StringValue()
	}
	return out
}

// ToBytesSlice returns every element of a sequence as raw bytes. Elements
// that cannot carry bytes (containers, nil) become nil entries.
func ToBytesSlice(v Value) [][]byte {
	elems := ToValueSlice(v)
	out := make([][]byte, len(elems))
	for i, e := range elems {
		if b, err := e.Bytes(); err == nil {
			out[i] = b
		}
	}
	return out
}

// ToBoolSlice converts a sequence of count flags to booleans. Unrecognized
// elements are false.
func ToBoolSlice(v Value) []bool {
	elems := ToValueSlice(v)
	out := make([]bool, len(elems))
	for i, e := range elems {
		b, err := e.CountBool()
		out[i] = err == nil && b
	}
	return out
}

// ToInt64Slice converts a sequence of numeric values. Non-numeric elements
// are zero.
func ToInt64Slice(v Value) []int64 {
	elems := ToValueSlice(v)
	out := make([]int64, len(elems))
	for i, e := range elems {
		if n, err := e.Int64(); err == nil {
			out[i] = n
		}
	}
	return out
}

// ToFloat64Slice converts a sequence of numeric values. Non-numeric
// elements are zero.
func ToFloat64Slice(v Value) []float64 {
	elems := ToValueSlice(v)
	out := make([]float64, len(elems))
	for i, e := range elems {
		if f, err := e.Float64(); err == nil {
			out[i] = f
		}
	}
	return out
}

// ToStringMap builds a text map from either a mapping or a flat pair
// sequence ([k1, v1, k2, v2, ...]). Any other shape yields an empty map.
// An unpaired trailing element of a flat sequence is dropped.
func ToStringMap(v Value) map[string]string {
	out := map[string]string{}
	switch v.kind {
	case KindMap:
		for _, e := range v.ents {
			out[e.Key.StringValue()] = e.Val.StringValue()
		}
	case KindArray:
		arr := unwrapSingleton(v).arr
		for i := 0; i+1 < len(arr); i += 2 {
			out[arr[i].StringValue()] = arr[i+1].StringValue()
		}
	}
	return out
}

// ToFloatMap builds a member→score map from either a mapping or a flat
// pair sequence. Non-numeric scores are zero.
func ToFloatMap(v Value) map[string]float64 {
	out := map[string]float64{}
	put := func(k, sv Value) {
		f, err := sv.Float64()
		if err != nil {
			f = 0
		}
		out[k.StringValue()] = f
	}
	switch v.kind {
	case KindMap:
		for _, e := range v.ents {
			put(e.Key, e.Val)
		}
	case KindArray:
		arr := unwrapSingleton(v).arr
		// Pair-of-pairs shape ([[member, score], ...]) appears on some
		// protocol versions; flat pairs on others.
		if len(arr) > 0 && arr[0].kind == KindArray {
			for _, p := range arr {
				if len(p.arr) == 2 {
					put(p.arr[0], p.arr[1])
				}
			}
			return out
		}
		for i := 0; i+1 < len(arr); i += 2 {
			put(arr[i], arr[i+1])
		}
	}
	return out
}

// ToStringSet collects the elements of a sequence into a set.
func ToStringSet(v Value) map[string]struct{} {
	elems := ToValueSlice(v)
	out := make(map[string]struct{}, len(elems))
	for _, e := range elems {
		out[e.StringValue()] = struct{}{}
	}
	return out
}
