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

// Package reader provides single pass readers over tool report files.
//
// Every reader follows the same protocol: call Next until it returns false,
// read the current pair through the accessors, then check Err.
package reader

import (
	stdjson "encoding/json"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeError is returned when a file holds malformed JSON or XML.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodeArray reads path and decodes it as a JSON array.
func decodeArray(path string) ([]stdjson.RawMessage, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	var entries []stdjson.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return entries, nil
}
