package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/assetorbit/engine/pkg/models/domain"
)

// Reporter outputs engine results to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Printf(format string, args ...any) {
	fmt.Fprintf(c.writer, format, args...)
}

// TransformReport is fed to the transform template.
type TransformReport struct {
	Source  domain.Source
	Results []domain.TransformationResult
}

func (c *Reporter) HandleTransform(report *TransformReport) error {
	tmpl := `
Source: {{.Source}} ({{len .Results}} rows)
{{range $i, $r := .Results}}
--- row {{$i}} ---
{{- with $r.DirectFields}}
{{- if .AssetTag}}
assetTag: {{.AssetTag}}{{end}}
{{- if .SerialNumber}}
serialNumber: {{.SerialNumber}}{{end}}
{{- if .Make}}
make: {{.Make}}{{end}}
{{- if .Model}}
model: {{.Model}}{{end}}
{{- if .AssetType}}
assetType: {{.AssetType}}{{end}}
{{- if .Status}}
status: {{.Status}}{{end}}
{{- end}}
{{- range $key, $value := $r.Specifications}}
specifications.{{$key}}: {{$value}}
{{- end}}
{{- range $r.ValidationErrors}}
warning: {{.}}
{{- end}}
{{end}}
`
	t, err := template.New("transform").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// ClassifyReport is fed to the classification template.
type ClassifyReport struct {
	Results []domain.Classification
}

func (c *Reporter) HandleClassify(report *ClassifyReport) error {
	tmpl := `
Classified {{len .Results}} assets
{{range $i, $r := .Results}}
- asset {{$i}}: {{if $r.Matched}}category {{$r.CategoryID}} (rule {{$r.RuleID}}){{else}}no match{{end}}
{{- end}}
`
	t, err := template.New("classify").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

func (c *Reporter) HandleRuleTest(result domain.RuleTest) error {
	if result.Error != "" {
		fmt.Fprintf(c.writer, "error: %s\n", result.Error)
	}
	fmt.Fprintf(c.writer, "%s\nresult: %t\n", result.Explanation, result.Result)
	return nil
}
