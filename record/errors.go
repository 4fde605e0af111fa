package record

import (
	"fmt"
	"strings"
)

// KeyError is returned when a decoded mapping does not carry exactly the
// keys of the target record.
type KeyError struct {
	Type    string
	Key     string
	Missing bool
}

func (e *KeyError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s: missing key %q", e.Type, e.Key)
	}
	return fmt.Sprintf("%s: unexpected key %q", e.Type, e.Key)
}

// CoercionError is returned when a value cannot be converted to the type
// of its field.
type CoercionError struct {
	Field string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s to integer for field %q", e.Value, strings.TrimSpace(e.Field))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
