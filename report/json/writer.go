package json

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
)

var marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()

// valuer is implemented by records and by the nested InferBugTrace
type valuer interface {
	Values() []any
}

// UnsupportedTypeError is returned when a value has no JSON representation
// of its own: a struct which is not a record, a channel, a function and
// the like.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("json: unsupported type %s", e.Type)
}

// Marshal encodes v. Records are encoded as objects in canonical key
// order and line sets as arrays.
func Marshal(v interface{}) ([]byte, error) {
	if err := check(reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// MarshalIndent is like Marshal but indents the output
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	if err := check(reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, prefix, indent)
}

// Encoder writes checked JSON values to an output stream
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder returns an Encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// SetIndent configures the indentation of subsequent values
func (e *Encoder) SetIndent(prefix, indent string) {
	e.enc.SetIndent(prefix, indent)
}

// Encode writes v followed by a newline
func (e *Encoder) Encode(v interface{}) error {
	if err := check(reflect.ValueOf(v)); err != nil {
		return err
	}
	return e.enc.Encode(v)
}

// WriteReport write a report in json format to the output writer
func WriteReport(w io.Writer, data interface{}) error {
	raw, err := MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	_, err = w.Write(raw)
	return err
}

// check walks v and fails on the first value which would otherwise be
// encoded field by field through reflection.
func check(v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil
	}
	// records encode their values through the plain encoder, so walk them here
	if r, ok := valuesOf(v); ok {
		for _, value := range r.Values() {
			if err := check(reflect.ValueOf(value)); err != nil {
				return err
			}
		}
		return nil
	}
	t := v.Type()
	if t.Implements(marshalerType) || (v.CanAddr() && reflect.PointerTo(t).Implements(marshalerType)) {
		return nil
	}
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return check(v.Elem())
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := check(v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if err := check(iter.Value()); err != nil {
				return err
			}
		}
		return nil
	}
	return &UnsupportedTypeError{Type: t}
}

func valuesOf(v reflect.Value) (valuer, bool) {
	if v.CanInterface() {
		if r, ok := v.Interface().(valuer); ok {
			return r, true
		}
	}
	if v.CanAddr() && v.Addr().CanInterface() {
		if r, ok := v.Addr().Interface().(valuer); ok {
			return r, true
		}
	}
	return nil, false
}
