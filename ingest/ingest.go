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

// Package ingest converts raw static-analysis tool output into records.
package ingest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/staticbugs/toolwarn/reader"
	"github.com/staticbugs/toolwarn/record"
)

// DefaultRole names a SpotBugs source line that carries no role attribute
const DefaultRole = "SOURCE_LINE_DEFAULT"

// errorproneHeader matches "<path>:<line>: <warning|error>: [<Check>] <msg>"
var errorproneHeader = regexp.MustCompile(`^(.+\.java):(\d+): (warning|error): \[(\w+)\] (.*)$`)

// Ingester reads tool output files and turns them into records.
type Ingester struct {
	log *zap.Logger
}

// New creates an Ingester. A nil logger discards all output.
func New(logger *zap.Logger) *Ingester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingester{log: logger.Named("ingest")}
}

// ParseErrorprone extracts the diagnostics of an Error Prone build log.
// Each diagnostic header is followed by the offending code line and the
// caret line marking the column; either may be missing at the end of the log.
func ParseErrorprone(project string, lines []string) ([]*record.ErrorproneMsg, error) {
	msgs := []*record.ErrorproneMsg{}
	for i, line := range lines {
		m := errorproneHeader.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var code, mark string
		if i+1 < len(lines) {
			code = lines[i+1]
		}
		if i+2 < len(lines) {
			mark = lines[i+2]
		}
		msg, err := record.NewErrorproneMsg(project, record.ClassNameFromPath(m[1]), m[3], m[4], m[5], code, mark, m[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// ErrorproneFromLogs parses every log in paths. The project of a log is its
// base name without extension.
func (in *Ingester) ErrorproneFromLogs(paths []string) ([]*record.ErrorproneMsg, error) {
	r := reader.NewDataReader(paths)
	msgs := []*record.ErrorproneMsg{}
	for r.Next() {
		project := strings.TrimSuffix(r.Name(), filepath.Ext(r.Name()))
		parsed, err := ParseErrorprone(project, r.Lines())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Name(), err)
		}
		in.log.Debug("Parsed Error Prone log",
			zap.String("project", project),
			zap.Int("warnings", len(parsed)))
		msgs = append(msgs, parsed...)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SpotbugsFromXML converts the BugInstance elements of SpotBugs XML reports.
// The project of a report is its file name without .xml.
func (in *Ingester) SpotbugsFromXML(paths []string) ([]*record.SpotbugsMsg, error) {
	msgs := []*record.SpotbugsMsg{}
	err := reader.NewXMLReader(paths).Each(func(project string, nodes *reader.NodeIterator) error {
		count := 0
		for nodes.Next() {
			node := nodes.Node()
			if node.Tag != "BugInstance" {
				continue
			}
			msg, err := bugInstance(project, node)
			if err != nil {
				return fmt.Errorf("%s: %w", project, err)
			}
			msgs = append(msgs, msg)
			count++
		}
		if err := nodes.Err(); err != nil {
			return err
		}
		in.log.Debug("Parsed SpotBugs report",
			zap.String("project", project),
			zap.Int("bugs", count))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func bugInstance(project string, bug *etree.Element) (*record.SpotbugsMsg, error) {
	msg := &record.SpotbugsMsg{
		Proj:   project,
		Cat:    bug.SelectAttrValue("category", ""),
		Abbrev: bug.SelectAttrValue("abbrev", ""),
		Typ:    bug.SelectAttrValue("type", ""),
		Prio:   bug.SelectAttrValue("priority", ""),
		Rank:   bug.SelectAttrValue("rank", ""),
		Lines:  []record.SpotbugsSrcline{},
	}
	if long := bug.SelectElement("LongMessage"); long != nil {
		msg.Msg = strings.TrimSpace(long.Text())
	} else if short := bug.SelectElement("ShortMessage"); short != nil {
		msg.Msg = strings.TrimSpace(short.Text())
	}
	if cls := primary(bug, "Class"); cls != nil {
		msg.Cls = cls.SelectAttrValue("classname", "")
	}
	if mth := primary(bug, "Method"); mth != nil {
		msg.Mth = mth.SelectAttrValue("name", "")
	}
	if field := primary(bug, "Field"); field != nil {
		msg.Field = field.SelectAttrValue("name", "")
	}
	for _, src := range bug.SelectElements("SourceLine") {
		start := src.SelectAttrValue("start", "")
		if start == "" {
			continue
		}
		line, err := record.NewSpotbugsSrcline(start, src.SelectAttrValue("end", start), src.SelectAttrValue("role", DefaultRole))
		if err != nil {
			return nil, err
		}
		msg.Lines = append(msg.Lines, line)
	}
	return msg, nil
}

// primary returns the child named tag flagged primary, else the first one.
func primary(parent *etree.Element, tag string) *etree.Element {
	children := parent.SelectElements(tag)
	for _, c := range children {
		if c.SelectAttrValue("primary", "") == "true" {
			return c
		}
	}
	if len(children) > 0 {
		return children[0]
	}
	return nil
}

// InferMsgsFromReport condenses the issues of an Infer report into InferMsg
// records of project. The class is derived from the issue file.
func InferMsgsFromReport(project string, issues []*record.InferIssue) []*record.InferMsg {
	msgs := make([]*record.InferMsg, 0, len(issues))
	for _, issue := range issues {
		msgs = append(msgs, record.NewInferMsg(
			project,
			record.ClassNameFromPath(issue.File),
			issue.BugType,
			issue.Qualifier,
			issue.Severity,
			[]int{issue.Line},
			issue.Procedure,
		))
	}
	return msgs
}
