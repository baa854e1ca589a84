package resp

import (
	"errors"
	"fmt"
)

// ErrNil is returned by strict accessors when the engine reported an absent
// value (nil variant) where the caller required one.
var ErrNil = errors.New("resp: nil value")

// CoercionError reports a strict conversion applied to a variant that cannot
// represent the target meaningfully (e.g. a mapping where a scalar count was
// required). Forgiving converters never produce it.
type CoercionError struct {
	Target string // target type description, e.g. "int64"
	Kind   Kind   // source variant
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("resp: cannot coerce %s value to %s", e.Kind, e.Target)
}

func coercionErr(target string, v Value) error {
	return &CoercionError{Target: target, Kind: v.kind}
}
