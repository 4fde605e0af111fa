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
	"strings"
)

// NoWarning marks a project or class for which a tool reported nothing.
const NoWarning = "NO_WARNING"

// Kind enumerates the known record types
type Kind int

const (
	// ErrorproneKind is an Error Prone diagnostic
	ErrorproneKind Kind = iota
	// SpotbugsKind is a SpotBugs bug instance
	SpotbugsKind
	// InferIssueKind is a raw entry of an Infer report
	InferIssueKind
	// InferKind is a normalized Infer warning
	InferKind
	// FileDiffKind is the set of changed lines of a class
	FileDiffKind
)

// String converts a Kind into a string
func (k Kind) String() string {
	switch k {
	case ErrorproneKind:
		return "errorprone"
	case SpotbugsKind:
		return "spotbugs"
	case InferIssueKind:
		return "infer issue"
	case InferKind:
		return "infer"
	case FileDiffKind:
		return "diff"
	}
	return "unknown"
}

// Record is a normalized finding. Keys and Values have the same length and
// Keys defines the canonical order used for decoding and encoding.
type Record interface {
	Kind() Kind
	Keys() []string
	Values() []any
}

// Located is implemented by the records which belong to a project class.
type Located interface {
	Record
	Project() string
	Class() string
}

// Fields pairs the keys and values of a record in canonical order.
func Fields(r Record) []Field {
	keys, values := r.Keys(), r.Values()
	fields := make([]Field, len(keys))
	for i, k := range keys {
		fields[i] = Field{Key: k, Value: values[i]}
	}
	return fields
}

// Field is one key/value pair of a record
type Field struct {
	Key   string
	Value any
}

// marshalOrdered encodes keys and values as a JSON object whose member
// order is the order of keys.
func marshalOrdered(keys []string, values []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(values[i])
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", strings.TrimSpace(k), err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// render writes one "key<sep>value" line per field.
func render(keys []string, values []any, sep string, trailing bool) string {
	var sb strings.Builder
	sb.WriteString("\n")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s%s%v", k, sep, values[i])
	}
	if trailing {
		sb.WriteString("\n")
	}
	return sb.String()
}

// Collect converts a typed record slice into a []Record
func Collect[T Record](items []T) []Record {
	records := make([]Record, len(items))
	for i, item := range items {
		records[i] = item
	}
	return records
}
