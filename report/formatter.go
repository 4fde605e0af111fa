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

package report

import (
	"io"

	"github.com/staticbugs/toolwarn/record"
	"github.com/staticbugs/toolwarn/report/csv"
	"github.com/staticbugs/toolwarn/report/json"
	"github.com/staticbugs/toolwarn/report/text"
	"github.com/staticbugs/toolwarn/report/yaml"
)

// Format enumerates the output format for reported records
type Format int

const (
	// ReportText is the default format that writes to stdout
	ReportText Format = iota // Plain text format

	// ReportJSON set the output format to json
	ReportJSON // Json format

	// ReportYAML set the output format to yaml
	ReportYAML // YAML format

	// ReportCSV set the output format to csv
	ReportCSV // CSV format
)

// ParseFormat maps a format name to a Format. Unknown names fall back to
// ReportText.
func ParseFormat(name string) Format {
	switch name {
	case "json":
		return ReportJSON
	case "yaml":
		return ReportYAML
	case "csv":
		return ReportCSV
	}
	return ReportText
}

// String converts a Format into its name
func (f Format) String() string {
	switch f {
	case ReportJSON:
		return "json"
	case ReportYAML:
		return "yaml"
	case ReportCSV:
		return "csv"
	}
	return "text"
}

// CreateReport generates a report for the supplied records in the
// specified format. The formats currently accepted are: json, yaml, csv
// and text.
func CreateReport(w io.Writer, format string, enableColor bool, data []record.Record) error {
	var err error
	switch ParseFormat(format) {
	case ReportJSON:
		err = json.WriteReport(w, data)
	case ReportYAML:
		err = yaml.WriteReport(w, data)
	case ReportCSV:
		err = csv.WriteReport(w, data)
	default:
		err = text.WriteReport(w, data, enableColor)
	}
	return err
}
