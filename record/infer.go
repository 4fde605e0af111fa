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

// InferIssueKeys is the canonical key order of an InferIssue. It follows
// the report.json layout of Infer 0.15.
var InferIssueKeys = []string{
	"bug_trace",
	"bug_type",
	"bug_type_hum",
	"column",
	"file",
	"hash",
	"key",
	"line",
	"procedure",
	"procedure_start_line",
	"qualifier",
	"severity",
}

// InferBugTraceKeys is the canonical key order of an InferBugTrace
var InferBugTraceKeys = []string{
	"level",
	"filename",
	"line_number",
	"column_number",
	"description",
}

// InferKeys is the canonical key order of an InferMsg
var InferKeys = []string{
	"      Proj",
	"     Class",
	"  Bug_Type",
	"       Msg",
	"  Severity",
	"     Lines",
	" Procedure",
}

// InferBugTrace is one step of the trace leading to an Infer issue.
type InferBugTrace struct {
	Level    int
	Filename string
	Line     int
	Column   int
	Desc     string
}

// Values returns the trace fields in InferBugTraceKeys order
func (t *InferBugTrace) Values() []any {
	return []any{t.Level, t.Filename, t.Line, t.Column, t.Desc}
}

func (t *InferBugTrace) String() string {
	return render(InferBugTraceKeys, t.Values(), ": ", true)
}

// MarshalJSON encodes the trace step in canonical key order
func (t *InferBugTrace) MarshalJSON() ([]byte, error) {
	return marshalOrdered(InferBugTraceKeys, t.Values())
}

// UnmarshalJSON decodes a trace step. Members other than
// InferBugTraceKeys are ignored.
func (t *InferBugTrace) UnmarshalJSON(data []byte) error {
	fs, err := decodeFields(data, "InferBugTrace", InferBugTraceKeys, false)
	if err != nil {
		return err
	}
	level, err := fs.integer("level")
	if err != nil {
		return err
	}
	filename, err := fs.text("filename")
	if err != nil {
		return err
	}
	line, err := fs.integer("line_number")
	if err != nil {
		return err
	}
	column, err := fs.integer("column_number")
	if err != nil {
		return err
	}
	desc, err := fs.text("description")
	if err != nil {
		return err
	}
	*t = InferBugTrace{Level: level, Filename: filename, Line: line, Column: column, Desc: desc}
	return nil
}

// InferIssue is one entry of an Infer report.json.
type InferIssue struct {
	BugTrace           []*InferBugTrace
	BugType            string
	BugTypeHum         string
	Column             int
	File               string
	Hash               string
	Key                string
	Line               int
	Procedure          string
	ProcedureStartLine int
	Qualifier          string
	Severity           string
}

// Kind implements Record
func (i *InferIssue) Kind() Kind { return InferIssueKind }

// Keys implements Record
func (i *InferIssue) Keys() []string { return InferIssueKeys }

// Values implements Record
func (i *InferIssue) Values() []any {
	trace := i.BugTrace
	if trace == nil {
		trace = []*InferBugTrace{}
	}
	return []any{trace, i.BugType, i.BugTypeHum, i.Column, i.File, i.Hash,
		i.Key, i.Line, i.Procedure, i.ProcedureStartLine, i.Qualifier, i.Severity}
}

func (i *InferIssue) String() string {
	return render(InferIssueKeys, i.Values(), ": ", true)
}

// MarshalJSON encodes the issue in canonical key order, trace included
func (i *InferIssue) MarshalJSON() ([]byte, error) {
	return marshalOrdered(InferIssueKeys, i.Values())
}

// UnmarshalJSON decodes a report.json entry. Infer emits more members
// than InferIssueKeys; those are ignored.
func (i *InferIssue) UnmarshalJSON(data []byte) error {
	fs, err := decodeFields(data, "InferIssue", InferIssueKeys, false)
	if err != nil {
		return err
	}
	var issue InferIssue
	if err := fs.decode("bug_trace", &issue.BugTrace); err != nil {
		return err
	}
	if issue.BugTrace == nil {
		issue.BugTrace = []*InferBugTrace{}
	}
	texts := []struct {
		key string
		dst *string
	}{
		{"bug_type", &issue.BugType},
		{"bug_type_hum", &issue.BugTypeHum},
		{"file", &issue.File},
		{"hash", &issue.Hash},
		{"key", &issue.Key},
		{"procedure", &issue.Procedure},
		{"qualifier", &issue.Qualifier},
		{"severity", &issue.Severity},
	}
	for _, t := range texts {
		if *t.dst, err = fs.text(t.key); err != nil {
			return err
		}
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"column", &issue.Column},
		{"line", &issue.Line},
		{"procedure_start_line", &issue.ProcedureStartLine},
	}
	for _, n := range ints {
		if *n.dst, err = fs.integer(n.key); err != nil {
			return err
		}
	}
	*i = issue
	return nil
}

// InferMsg is a normalized Infer warning. Lines is kept as supplied by
// the caller.
type InferMsg struct {
	Proj      string
	Cls       string
	BugType   string
	Msg       string
	Severity  string
	Lines     any
	Procedure string
}

// NewInferMsg creates an InferMsg
func NewInferMsg(proj, cls, bugType, msg, severity string, lines any, procedure string) *InferMsg {
	return &InferMsg{
		Proj:      proj,
		Cls:       cls,
		BugType:   bugType,
		Msg:       msg,
		Severity:  severity,
		Lines:     lines,
		Procedure: procedure,
	}
}

// Kind implements Record
func (m *InferMsg) Kind() Kind { return InferKind }

// Keys implements Record
func (m *InferMsg) Keys() []string { return InferKeys }

// Values implements Record
func (m *InferMsg) Values() []any {
	return []any{m.Proj, m.Cls, m.BugType, m.Msg, m.Severity, m.Lines, m.Procedure}
}

// Project implements Located
func (m *InferMsg) Project() string { return m.Proj }

// Class implements Located
func (m *InferMsg) Class() string { return m.Cls }

func (m *InferMsg) String() string {
	return render(InferKeys, m.Values(), ": ", false)
}

// MarshalJSON encodes the message as an object in canonical key order
func (m *InferMsg) MarshalJSON() ([]byte, error) {
	return marshalOrdered(InferKeys, m.Values())
}

// UnmarshalJSON decodes an object carrying exactly the InferKeys
func (m *InferMsg) UnmarshalJSON(data []byte) error {
	fs, err := decodeFields(data, "InferMsg", InferKeys, true)
	if err != nil {
		return err
	}
	var msg InferMsg
	texts := []struct {
		key string
		dst *string
	}{
		{InferKeys[0], &msg.Proj},
		{InferKeys[1], &msg.Cls},
		{InferKeys[2], &msg.BugType},
		{InferKeys[3], &msg.Msg},
		{InferKeys[4], &msg.Severity},
		{InferKeys[6], &msg.Procedure},
	}
	for _, t := range texts {
		if *t.dst, err = fs.text(t.key); err != nil {
			return err
		}
	}
	if err := fs.decode(InferKeys[5], &msg.Lines); err != nil {
		return err
	}
	*m = msg
	return nil
}
