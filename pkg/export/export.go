// Package export renders a BugAnalysis into a self-contained printable HTML
// report. It is a pure rendering surface with no gateway or store dependency.
package export

import (
	_ "embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/helmcode/bug-autopsy/pkg/model"
)

//go:embed report.gohtml
var reportTemplate string

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"severityLabel": model.SeverityLabel,
	"lower":         strings.ToLower,
	"upper":         strings.ToUpper,
	"inc":           func(i int) int { return i + 1 },
}).Parse(reportTemplate))

type reportData struct {
	Analysis  model.BugAnalysis
	Generated string
}

// Render writes the HTML report for one analysis.
func Render(w io.Writer, analysis model.BugAnalysis) error {
	return tmpl.Execute(w, reportData{
		Analysis:  analysis,
		Generated: time.Now().Format("2006-01-02 15:04:05"),
	})
}
