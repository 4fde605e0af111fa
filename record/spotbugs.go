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
)

// SpotbugsKeys is the canonical key order of a SpotbugsMsg
var SpotbugsKeys = []string{
	"    Proj",
	"   Class",
	"     Cat",
	"  Abbrev",
	"    Type",
	"Priority",
	"    Rank",
	"     Msg",
	"  Method",
	"   Field",
	"   Lines",
}

// SpotbugsSrcline is a source range attached to a bug instance. It is
// encoded as the array [start, end, role].
type SpotbugsSrcline struct {
	Start int
	End   int
	Role  string
}

// NewSpotbugsSrcline creates a SpotbugsSrcline, converting start and end
// to integers.
func NewSpotbugsSrcline(start, end, role string) (SpotbugsSrcline, error) {
	s, err := atoi("start", start)
	if err != nil {
		return SpotbugsSrcline{}, err
	}
	e, err := atoi("end", end)
	if err != nil {
		return SpotbugsSrcline{}, err
	}
	return SpotbugsSrcline{Start: s, End: e, Role: role}, nil
}

// MarshalJSON encodes the line as a three element array
func (l SpotbugsSrcline) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.Start, l.End, l.Role})
}

// UnmarshalJSON decodes a [start, end, role] triple
func (l *SpotbugsSrcline) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("SpotbugsSrcline: %w", err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("SpotbugsSrcline: expected 3 elements, got %d", len(parts))
	}
	start, err := coerceInt("start", parts[0])
	if err != nil {
		return err
	}
	end, err := coerceInt("end", parts[1])
	if err != nil {
		return err
	}
	role := &fieldSet{typ: "SpotbugsSrcline", fields: map[string]json.RawMessage{"role": parts[2]}}
	r, err := role.text("role")
	if err != nil {
		return err
	}
	*l = SpotbugsSrcline{Start: start, End: end, Role: r}
	return nil
}

// SpotbugsMsg is one bug instance reported by SpotBugs.
type SpotbugsMsg struct {
	Proj   string
	Cls    string
	Cat    string
	Abbrev string
	Typ    string
	Prio   string
	Rank   string
	Msg    string
	Mth    string
	Field  string
	Lines  []SpotbugsSrcline
}

// Kind implements Record
func (m *SpotbugsMsg) Kind() Kind { return SpotbugsKind }

// Keys implements Record
func (m *SpotbugsMsg) Keys() []string { return SpotbugsKeys }

// Values implements Record
func (m *SpotbugsMsg) Values() []any {
	lines := m.Lines
	if lines == nil {
		lines = []SpotbugsSrcline{}
	}
	return []any{m.Proj, m.Cls, m.Cat, m.Abbrev, m.Typ, m.Prio,
		m.Rank, m.Msg, m.Mth, m.Field, lines}
}

// Project implements Located
func (m *SpotbugsMsg) Project() string { return m.Proj }

// Class implements Located
func (m *SpotbugsMsg) Class() string { return m.Cls }

// UnrollLines expands every source range into its line numbers and
// returns them sorted without duplicates.
func (m *SpotbugsMsg) UnrollLines() []int {
	seen := make(map[int]struct{})
	for _, l := range m.Lines {
		for n := l.Start; n <= l.End; n++ {
			seen[n] = struct{}{}
		}
	}
	lines := make([]int, 0, len(seen))
	for n := range seen {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	return lines
}

func (m *SpotbugsMsg) String() string {
	return render(SpotbugsKeys, m.Values(), ": ", true)
}

// MarshalJSON encodes the message as an object in canonical key order
func (m *SpotbugsMsg) MarshalJSON() ([]byte, error) {
	return marshalOrdered(SpotbugsKeys, m.Values())
}

// UnmarshalJSON decodes an object carrying exactly the SpotbugsKeys
func (m *SpotbugsMsg) UnmarshalJSON(data []byte) error {
	fs, err := decodeFields(data, "SpotbugsMsg", SpotbugsKeys, true)
	if err != nil {
		return err
	}
	var text [10]string
	for i, k := range SpotbugsKeys[:10] {
		if text[i], err = fs.text(k); err != nil {
			return err
		}
	}
	var lines []SpotbugsSrcline
	if err := fs.decode(SpotbugsKeys[10], &lines); err != nil {
		return err
	}
	if lines == nil {
		lines = []SpotbugsSrcline{}
	}
	*m = SpotbugsMsg{
		Proj:   text[0],
		Cls:    text[1],
		Cat:    text[2],
		Abbrev: text[3],
		Typ:    text[4],
		Prio:   text[5],
		Rank:   text[6],
		Msg:    text[7],
		Mth:    text[8],
		Field:  text[9],
		Lines:  lines,
	}
	return nil
}
