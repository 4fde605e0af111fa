package text

import (
	_ "embed" // use go embed to import template
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/gookit/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/staticbugs/toolwarn/record"
)

var (
	errorTheme   = color.New(color.FgLightWhite, color.BgRed)
	warningTheme = color.New(color.FgBlack, color.BgYellow)
	defaultTheme = color.New(color.FgWhite, color.BgBlack)

	title = cases.Title(language.English)

	//go:embed template.txt
	templateContent string
)

// summary counts the records of one kind
type summary struct {
	Kind  string
	Count int
}

type reportData struct {
	Records []record.Record
	Summary []summary
}

// WriteReport write a (colorized) report in text format
func WriteReport(w io.Writer, data []record.Record, enableColor bool) error {
	t, e := template.
		New("toolwarn").
		Funcs(plainTextFuncMap(enableColor)).
		Parse(templateContent)
	if e != nil {
		return e
	}

	return t.Execute(w, reportData{Records: data, Summary: summarize(data)})
}

func plainTextFuncMap(enableColor bool) template.FuncMap {
	funcs := template.FuncMap{
		"kind":     kindName,
		"location": location,
		"fields":   fields,
	}
	if enableColor {
		funcs["highlight"] = highlight
		funcs["notice"] = color.Notice.Render
		funcs["success"] = color.Success.Render
		return funcs
	}

	// by default those functions return the given content untouched
	funcs["highlight"] = func(t string, k record.Kind) string {
		return t
	}
	funcs["notice"] = fmt.Sprint
	funcs["success"] = fmt.Sprint
	return funcs
}

// highlight returns content t colored based on the record kind
func highlight(t string, k record.Kind) string {
	switch k {
	case record.ErrorproneKind, record.InferKind, record.InferIssueKind:
		return errorTheme.Sprint(t)
	case record.SpotbugsKind:
		return warningTheme.Sprint(t)
	default:
		return defaultTheme.Sprint(t)
	}
}

func kindName(r record.Record) string {
	return title.String(r.Kind().String())
}

// location names where a record points to
func location(r record.Record) string {
	switch t := r.(type) {
	case record.Located:
		return t.Project() + ":" + t.Class()
	case *record.InferIssue:
		return fmt.Sprintf("%s:%d", t.File, t.Line)
	}
	return ""
}

// fields returns the record fields with keys stripped of their padding
func fields(r record.Record) []record.Field {
	fs := record.Fields(r)
	for i := range fs {
		fs[i].Key = strings.TrimSuffix(strings.TrimSpace(fs[i].Key), ":")
	}
	return fs
}

func summarize(data []record.Record) []summary {
	counts := map[record.Kind]int{}
	for _, r := range data {
		counts[r.Kind()]++
	}
	var out []summary
	for k := record.ErrorproneKind; k <= record.FileDiffKind; k++ {
		if counts[k] > 0 {
			out = append(out, summary{Kind: title.String(k.String()), Count: counts[k]})
		}
	}
	return out
}
