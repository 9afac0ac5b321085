package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/campworks/cycleplan/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML timeline page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/timeline.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("timeline").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"round": func(d decimal.Decimal) decimal.Decimal {
		return d.Round(2)
	},
	"year": monthYear,
	"inc":  func(i int) int { return i + 1 },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.TimelineReport) ([]byte, error) {
	if err := requireReport(report); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
