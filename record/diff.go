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
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FileDiffKeys is the canonical key order of a FileDiff
var FileDiffKeys = []string{
	"Project: ",
	"  Class: ",
	"  Lines: ",
}

// LineSet is a set of line numbers
type LineSet map[int]struct{}

// NewLineSet creates a set holding lines
func NewLineSet(lines ...int) LineSet {
	s := make(LineSet, len(lines))
	for _, l := range lines {
		s[l] = struct{}{}
	}
	return s
}

// Contains reports whether line is in the set
func (s LineSet) Contains(line int) bool {
	_, ok := s[line]
	return ok
}

// Sorted returns the members in ascending order
func (s LineSet) Sorted() []int {
	lines := make([]int, 0, len(s))
	for l := range s {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}

func (s LineSet) String() string {
	parts := make([]string, 0, len(s))
	for _, l := range s.Sorted() {
		parts = append(parts, strconv.Itoa(l))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON encodes the set as an array
func (s LineSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of line numbers, given as integers or
// numeric strings. Duplicates collapse.
func (s *LineSet) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("LineSet: %w", err)
	}
	set := make(LineSet, len(raw))
	for _, r := range raw {
		n, err := coerceInt(FileDiffKeys[2], r)
		if err != nil {
			return err
		}
		set[n] = struct{}{}
	}
	*s = set
	return nil
}

// FileDiff records which lines of a class changed in a project.
type FileDiff struct {
	Proj  string
	Cls   string
	Lines LineSet
}

// NewFileDiff creates a FileDiff, converting lines to integers and
// dropping duplicates.
func NewFileDiff(proj, cls string, lines []string) (*FileDiff, error) {
	set := make(LineSet, len(lines))
	for _, l := range lines {
		n, err := atoi(FileDiffKeys[2], l)
		if err != nil {
			return nil, err
		}
		set[n] = struct{}{}
	}
	return &FileDiff{Proj: proj, Cls: cls, Lines: set}, nil
}

// Kind implements Record
func (d *FileDiff) Kind() Kind { return FileDiffKind }

// Keys implements Record
func (d *FileDiff) Keys() []string { return FileDiffKeys }

// Values implements Record
func (d *FileDiff) Values() []any {
	lines := d.Lines
	if lines == nil {
		lines = LineSet{}
	}
	return []any{d.Proj, d.Cls, lines}
}

// Project implements Located
func (d *FileDiff) Project() string { return d.Proj }

// Class implements Located
func (d *FileDiff) Class() string { return d.Cls }

func (d *FileDiff) String() string {
	return render(FileDiffKeys, d.Values(), "", true)
}

// MarshalJSON encodes the diff as an object in canonical key order
func (d *FileDiff) MarshalJSON() ([]byte, error) {
	return marshalOrdered(FileDiffKeys, d.Values())
}

// UnmarshalJSON decodes an object carrying exactly the FileDiffKeys
func (d *FileDiff) UnmarshalJSON(data []byte) error {
	fs, err := decodeFields(data, "FileDiff", FileDiffKeys, true)
	if err != nil {
		return err
	}
	proj, err := fs.text(FileDiffKeys[0])
	if err != nil {
		return err
	}
	cls, err := fs.text(FileDiffKeys[1])
	if err != nil {
		return err
	}
	var lines LineSet
	if err := fs.decode(FileDiffKeys[2], &lines); err != nil {
		return err
	}
	if lines == nil {
		lines = LineSet{}
	}
	*d = FileDiff{Proj: proj, Cls: cls, Lines: lines}
	return nil
}
