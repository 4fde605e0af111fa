package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/staticbugs/toolwarn/record"
)

// WriteReport write a report in csv format to the output writer. Each row
// starts with the record kind followed by its values in key order.
func WriteReport(w io.Writer, data []record.Record) error {
	out := csv.NewWriter(w)
	defer out.Flush()
	for _, r := range data {
		values := r.Values()
		row := make([]string, 0, len(values)+1)
		row = append(row, r.Kind().String())
		for _, v := range values {
			row = append(row, cell(v))
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func cell(v interface{}) string {
	switch t := v.(type) {
	case record.LineSet:
		return joinInts(t.Sorted())
	case []record.SpotbugsSrcline:
		parts := make([]string, len(t))
		for i, l := range t {
			parts[i] = fmt.Sprintf("%d-%d:%s", l.Start, l.End, l.Role)
		}
		return strings.Join(parts, " ")
	case []*record.InferBugTrace:
		parts := make([]string, len(t))
		for i, step := range t {
			parts[i] = fmt.Sprintf("%s:%d", step.Filename, step.Line)
		}
		return strings.Join(parts, " ")
	}
	return fmt.Sprint(v)
}

func joinInts(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, " ")
}
