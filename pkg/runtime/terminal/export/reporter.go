package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
)

// Reporter renders a report to the console in a formatted text form.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"vehicleTitle": func(v domain.VehicleProfile) string {
			var parts []string
			if v.Year > 0 {
				parts = append(parts, fmt.Sprintf("%d", v.Year))
			}
			parts = append(parts, v.Make, v.Model)
			if v.Trim != "" {
				parts = append(parts, v.Trim)
			}
			return strings.TrimSpace(strings.Join(parts, " "))
		},
		"usd": func(amount int) string {
			return fmt.Sprintf("$%d", amount)
		},
		"scoreBar": func(score int) string {
			if score < 0 {
				score = 0
			}
			if score > 10 {
				score = 10
			}
			return strings.Repeat("#", score) + strings.Repeat(".", 10-score)
		},
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
	}

	tmpl := `
{{vehicleTitle .Vehicle}} ({{.Tier}} report {{.ID}})
Generated: {{.GeneratedAt.Format "2006-01-02 15:04"}}

Buy Score: {{.Score.Score}}/10 [{{scoreBar .Score.Score}}] {{.Score.Label}}
{{.Score.OneLiner}}

=== At a Glance ===
Best thing: {{.Glance.BestThing}}
Know first: {{.Glance.KnowBeforeYouGo}}

=== Market Position ===
{{.Market.Summary}}
Position: {{.Market.PricePosition}}
{{- if .Market.ValueFactors}}
Factors: {{join .Market.ValueFactors "; "}}
{{- end}}
{{- with .Market.Comps}}
Comparables: {{.CompCount}} nearby of {{.TotalMarket}} nationwide
Price range: {{usd .MinPrice}} to {{usd .MaxPrice}} (avg {{usd .AvgPrice}}, spread {{.SpreadPct}}%)
{{- if .Percentile}}
Price percentile: {{.Percentile}}
{{- end}}
Demand score: {{.DemandScore}}/10
{{- end}}

=== Reliability ===
Recalls on file: {{.Reliability.RecallCount}}
Complaints on file: {{.Reliability.ComplaintCount}}
{{.Reliability.GenerationOverview}}
{{- range .Reliability.KnownIssues}}
- [{{.Severity}}] {{.Item}}: {{.WhatToDo}}
{{- end}}

{{- if .Questions}}

=== Smart Questions ===
{{- range .Questions}}
- {{.Ask}}
  Why: {{.Why}}
{{- end}}
{{- end}}

{{- if .PrepSteps}}

=== Before You Visit ===
{{- range .PrepSteps}}
- {{.}}
{{- end}}
{{- end}}

{{- if .TestDrive}}

=== On the Test Drive ===
{{- range .TestDrive}}
- {{.}}
{{- end}}
{{- end}}

{{- with .Negotiation}}

=== Negotiation ===
Expected out-the-door: {{.ExpectedOTD}}
{{- if .FeesToExpect}}
Fees to expect: {{join .FeesToExpect "; "}}
{{- end}}
{{- if .FeesToQuestion}}
Fees to question: {{join .FeesToQuestion "; "}}
{{- end}}
Financing tip: {{.FinancingTip}}
{{- end}}

{{- with .CostToOwn}}

=== Cost to Own ===
Monthly fuel: {{.MonthlyFuel}}
Annual insurance: {{.AnnualInsurance}}
Annual maintenance: {{.AnnualMaintenance}}
Total annual estimate: {{.TotalAnnual}}
{{.Verdict}}
{{- end}}

{{- if .ProTips}}

=== Pro Tips ===
{{- range .ProTips}}
- {{.}}
{{- end}}
{{- end}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
