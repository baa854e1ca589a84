// Package args assembles wire-level argument token lists for commands whose
// shape is a count-prefixed key block plus optional trailing options. Every
// token is a raw byte slice so keys and values with arbitrary bytes pass
// through untouched.
package args

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNoKeys is returned when the key collection itself is nil. An empty
// non-nil collection is legal and emits a "0" count token.
var ErrNoKeys = errors.New("args: key collection is nil")

// ErrNilKey is returned when an individual key in the collection is nil.
var ErrNilKey = errors.New("args: nil key in collection")

// ErrOddPairs is returned when a flat field/value list has an unpaired
// trailing element.
var ErrOddPairs = errors.New("args: field/value list has odd length")

// FromStrings converts string tokens to the byte-slice form the builders
// take. Go string-to-byte conversion preserves content exactly.
func FromStrings(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func checkKeys(keys [][]byte) error {
	if keys == nil {
		return ErrNoKeys
	}
	for i, k := range keys {
		if k == nil {
			return fmt.Errorf("%w (index %d)", ErrNilKey, i)
		}
	}
	return nil
}

func countToken(n int) []byte {
	return []byte(strconv.Itoa(n))
}

// NumkeysPrefixed builds [len(keys), keys..., trailing...]. This is the
// layout of multi-key commands such as ZDIFF and SINTERCARD: the count token
// tells the server where the key block ends so trailing options can never be
// mistaken for keys.
func NumkeysPrefixed(keys [][]byte, trailing ...string) ([][]byte, error) {
	if err := checkKeys(keys); err != nil {
		return nil, err
	}
	out := make([][]byte, 0, 1+len(keys)+len(trailing))
	out = append(out, countToken(len(keys)))
	out = append(out, keys...)
	for _, t := range trailing {
		out = append(out, []byte(t))
	}
	return out, nil
}

// DestinationNumkeys builds [destination, len(keys), keys..., trailing...],
// the layout of store-variant commands such as ZDIFFSTORE.
func DestinationNumkeys(destination []byte, keys [][]byte, trailing ...string) ([][]byte, error) {
	if destination == nil {
		return nil, fmt.Errorf("%w (destination)", ErrNilKey)
	}
	rest, err := NumkeysPrefixed(keys, trailing...)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, 1+len(rest))
	out = append(out, destination)
	out = append(out, rest...)
	return out, nil
}

// TimeoutNumkeys builds [timeout, len(keys), keys..., trailing...], the
// layout of blocking commands such as BLMPOP. The timeout renders in plain
// decimal notation, never scientific, so the server parser always accepts it.
func TimeoutNumkeys(timeout float64, keys [][]byte, trailing ...string) ([][]byte, error) {
	rest, err := NumkeysPrefixed(keys, trailing...)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, 1+len(rest))
	out = append(out, []byte(strconv.FormatFloat(timeout, 'f', -1, 64)))
	out = append(out, rest...)
	return out, nil
}

// KeyFieldValues builds [key, f1, v1, f2, v2, ...] from a flat field/value
// list, validating that fields and values pair up.
func KeyFieldValues(key []byte, fieldValues [][]byte) ([][]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("%w (key)", ErrNilKey)
	}
	if len(fieldValues)%2 != 0 {
		return nil, ErrOddPairs
	}
	out := make([][]byte, 0, 1+len(fieldValues))
	out = append(out, key)
	out = append(out, fieldValues...)
	return out, nil
}
