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

// Package loader materializes record lists from JSON files.
package loader

import (
	stdjson "encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/staticbugs/toolwarn/reader"
	"github.com/staticbugs/toolwarn/record"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadJSONList returns the elements of the JSON array stored in path as
// generic mappings.
func LoadJSONList(path string) ([]map[string]interface{}, error) {
	r := reader.NewJSONReader(path)
	list := []map[string]interface{}{}
	for r.Next() {
		var entry map[string]interface{}
		if err := json.Unmarshal(r.Entry(), &entry); err != nil {
			return nil, &reader.DecodeError{Path: path, Err: fmt.Errorf("entry %d: %w", len(list), err)}
		}
		list = append(list, entry)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// LoadParsedDiffs loads the FileDiff records stored in path
func LoadParsedDiffs(path string) ([]*record.FileDiff, error) {
	return load[record.FileDiff](path)
}

// LoadParsedEP loads the ErrorproneMsg records stored in path
func LoadParsedEP(path string) ([]*record.ErrorproneMsg, error) {
	return load[record.ErrorproneMsg](path)
}

// LoadParsedSB loads the SpotbugsMsg records stored in path
func LoadParsedSB(path string) ([]*record.SpotbugsMsg, error) {
	return load[record.SpotbugsMsg](path)
}

// LoadParsedInf loads the InferMsg records stored in path
func LoadParsedInf(path string) ([]*record.InferMsg, error) {
	return load[record.InferMsg](path)
}

// LoadInferReport loads the issues of an Infer report.json
func LoadInferReport(path string) ([]*record.InferIssue, error) {
	return load[record.InferIssue](path)
}

// load decodes every element of the array in path into a T, keeping the
// source order. The first failing element aborts the load.
func load[T any, PT interface {
	*T
	stdjson.Unmarshaler
}](path string) ([]*T, error) {
	r := reader.NewJSONReader(path)
	records := []*T{}
	for r.Next() {
		rec := PT(new(T))
		if err := rec.UnmarshalJSON(r.Entry()); err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", path, len(records), err)
		}
		records = append(records, (*T)(rec))
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
