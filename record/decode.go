// (c) Copyright 2016 Hewlett Packard Enterprise Development LP
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// fieldSet holds the raw members of one decoded JSON object.
type fieldSet struct {
	typ    string
	fields map[string]json.RawMessage
}

// decodeFields splits data into its members and checks them against keys.
// Every key must be present; when strict is set no other member is allowed.
func decodeFields(data []byte, typ string, keys []string, strict bool) (*fieldSet, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%s: %w", typ, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%s: expected a JSON object, got null", typ)
	}
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return nil, &KeyError{Type: typ, Key: k, Missing: true}
		}
	}
	if strict && len(fields) > len(keys) {
		known := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			known[k] = struct{}{}
		}
		var extra []string
		for k := range fields {
			if _, ok := known[k]; !ok {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		return nil, &KeyError{Type: typ, Key: extra[0], Missing: false}
	}
	return &fieldSet{typ: typ, fields: fields}, nil
}

// text returns a scalar member as a string. Numbers and booleans keep
// their JSON spelling and null becomes the empty string.
func (f *fieldSet) text(key string) (string, error) {
	raw := bytes.TrimSpace(f.fields[key])
	switch {
	case len(raw) == 0 || string(raw) == "null":
		return "", nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%s: field %q: %w", f.typ, strings.TrimSpace(key), err)
		}
		return s, nil
	case raw[0] == '{' || raw[0] == '[':
		return "", fmt.Errorf("%s: field %q: expected a scalar, got %s", f.typ, strings.TrimSpace(key), raw)
	}
	return string(raw), nil
}

func (f *fieldSet) integer(key string) (int, error) {
	return coerceInt(key, f.fields[key])
}

func (f *fieldSet) decode(key string, v any) error {
	if err := json.Unmarshal(f.fields[key], v); err != nil {
		return fmt.Errorf("%s: field %q: %w", f.typ, strings.TrimSpace(key), err)
	}
	return nil
}

// coerceInt converts a JSON number or a numeric string to an int.
// Fractional numbers are truncated towards zero.
func coerceInt(field string, raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, &CoercionError{Field: field, Value: "nothing"}
	}
	switch {
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, &CoercionError{Field: field, Value: string(raw), Err: err}
		}
		return atoi(field, s)
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		if n, err := strconv.Atoi(string(raw)); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return 0, &CoercionError{Field: field, Value: string(raw), Err: err}
		}
		if math.IsNaN(f) || f < math.MinInt || f >= math.MaxInt {
			return 0, &CoercionError{Field: field, Value: string(raw), Err: strconv.ErrRange}
		}
		return int(f), nil
	}
	return 0, &CoercionError{Field: field, Value: string(raw)}
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &CoercionError{Field: field, Value: strconv.Quote(s), Err: err}
	}
	return n, nil
}
