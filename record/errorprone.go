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

// ErrorproneKeys is the canonical key order of an ErrorproneMsg
var ErrorproneKeys = []string{
	" Proj",
	"Class",
	" Type",
	"  Cat",
	"  Msg",
	" Code",
	" Mark",
	" Line",
}

// ErrorproneMsg is one diagnostic reported by Error Prone.
type ErrorproneMsg struct {
	Proj string
	Cls  string
	Typ  string // warning or error
	Cat  string // bug pattern name
	Msg  string
	Code string // offending source line
	Mark string // caret line pointing into Code
	Line int
}

// NewErrorproneMsg creates an ErrorproneMsg, converting line to an integer.
func NewErrorproneMsg(proj, cls, typ, cat, msg, code, mark, line string) (*ErrorproneMsg, error) {
	n, err := atoi(ErrorproneKeys[7], line)
	if err != nil {
		return nil, err
	}
	return &ErrorproneMsg{
		Proj: proj,
		Cls:  cls,
		Typ:  typ,
		Cat:  cat,
		Msg:  msg,
		Code: code,
		Mark: mark,
		Line: n,
	}, nil
}

// Kind implements Record
func (m *ErrorproneMsg) Kind() Kind { return ErrorproneKind }

// Keys implements Record
func (m *ErrorproneMsg) Keys() []string { return ErrorproneKeys }

// Values implements Record
func (m *ErrorproneMsg) Values() []any {
	return []any{m.Proj, m.Cls, m.Typ, m.Cat, m.Msg, m.Code, m.Mark, m.Line}
}

// Project implements Located
func (m *ErrorproneMsg) Project() string { return m.Proj }

// Class implements Located
func (m *ErrorproneMsg) Class() string { return m.Cls }

func (m *ErrorproneMsg) String() string {
	return render(ErrorproneKeys, m.Values(), ": ", true)
}

// MarshalJSON encodes the message as an object in canonical key order
func (m *ErrorproneMsg) MarshalJSON() ([]byte, error) {
	return marshalOrdered(ErrorproneKeys, m.Values())
}

// UnmarshalJSON decodes an object carrying exactly the ErrorproneKeys
func (m *ErrorproneMsg) UnmarshalJSON(data []byte) error {
	fs, err := decodeFields(data, "ErrorproneMsg", ErrorproneKeys, true)
	if err != nil {
		return err
	}
	var text [7]string
	for i, k := range ErrorproneKeys[:7] {
		if text[i], err = fs.text(k); err != nil {
			return err
		}
	}
	line, err := fs.integer(ErrorproneKeys[7])
	if err != nil {
		return err
	}
	*m = ErrorproneMsg{
		Proj: text[0],
		Cls:  text[1],
		Typ:  text[2],
		Cat:  text[3],
		Msg:  text[4],
		Code: text[5],
		Mark: text[6],
		Line: line,
	}
	return nil
}
