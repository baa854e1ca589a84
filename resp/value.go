// Package resp models the dynamically-shaped result values produced by a
// command-execution engine, and the coercions from those values to the
// typed contracts of the public client API.
package resp

import "strconv"

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNil Kind = iota
	KindInt
	KindBool
	KindDouble
	KindText
	KindBinary
	KindArray
	KindMap
	KindError
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindDouble:
		return "double"
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindError:
		return "error"
	}
	return "unknown"
}

// Value is a tagged union over every raw result shape an engine can
// produce. A Value is immutable by convention: producers build it once and
// consumers only read it. Text and Binary are distinct variants on purpose;
// nothing converts between them implicitly — callers pick a representation
// through the typed accessors in coerce.go.
type Value struct {
	kind Kind
	num  int64
	fnum float64
	str  string
	bin  []byte
	arr  []Value
	ents []MapEntry
}

// MapEntry is one key/value pair of a Mapping. Mappings are kept as ordered
// entry slices rather than Go maps so that canonicalization rules can make
// (and tests can check) deterministic ordering guarantees.
type MapEntry struct {
	Key Value
	Val Value
}

// Nil returns the nil Value.
func Nil() Value { return Value{kind: KindNil} }

// Int returns an integer Value.
func Int(n int64) Value { return Value{kind: KindInt, num: n} }

// Bool returns a boolean Value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}
	return v
}

// Double returns a double Value.
func Double(f float64) Value { return Value{kind: KindDouble, fnum: f} }

// Text returns a UTF-8 text Value.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Binary returns a binary-safe Value. The slice is retained, not copied.
func Binary(b []byte) Value { return Value{kind: KindBinary, bin: b} }

// Array returns an ordered sequence Value.
func Array(vs ...Value) Value { return Value{kind: KindArray, arr: vs} }

// Map returns an ordered mapping Value.
func Map(ents ...MapEntry) Value { return Value{kind: KindMap, ents: ents} }

// Pair builds a MapEntry.
func Pair(k, v Value) MapEntry { return MapEntry{Key: k, Val: v} }

// Error returns a server-error Value as seen on the wire. Engines normally
// surface these as Go errors instead; the variant exists so captures decode
// losslessly.
func Error(msg string) Value { return Value{kind: KindError, str: msg} }

// Kind reports the variant of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value is the nil variant.
func (v Value) IsNil() bool { return v.kind == KindNil }

// Array returns the elements of a sequence, or nil for any other variant.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Entries returns the ordered entries of a mapping, or nil for any other
// variant.
func (v Value) Entries() []MapEntry {
	if v.kind != KindMap {
		return nil
	}
	return v.ents
}

// Len returns the element count for sequences and mappings, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindMap:
		return len(v.ents)
	}
	return 0
}

// StringValue renders the value as display text. Scalars render naturally,
// binary data is reinterpreted as-is, and container variants render as ""
// so that output formatters decide their own layout.
func (v Value) StringValue() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		if v.num != 0 {
			return "true"
		}
		return "false"
	case KindDouble:
		return strconv.FormatFloat(v.fnum, 'g', -1, 64)
	case KindText, KindError:
		return v.str
	case KindBinary:
		return string(v.bin)
	}
	return ""
}

// Equal reports deep equality of two values, including mapping entry order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindInt, KindBool:
		return v.num == o.num
	case KindDouble:
		return v.fnum == o.fnum
	case KindText, KindError:
		return v.str == o.str
	case KindBinary:
		return string(v.bin) == string(o.bin)
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.ents) != len(o.ents) {
			return false
		}
		for i := range v.ents {
			if !v.ents[i].Key.Equal(o.ents[i].Key) || !v.ents[i].Val.Equal(o.ents[i].Val) {
				return false
			}
		}
		return true
	}
	return false
}

// Lookup returns the value stored under a text key of a mapping. The second
// return is false when v is not a mapping or the key is absent.
func (v Value) Lookup(key string) (Value, bool) {
	for _, e := range v.ents {
		if e.Key.StringValue() == key {
			return e.Val, true
		}
	}
	return Value{}, false
}
