package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"timeos/internal/domain"
)

// Timesheet carries everything the HTML report template needs.
type Timesheet struct {
	CompanyName     string
	ClientReference string
	Entries         []domain.TimeEntry
	Summary         Summary
	ReportDate      string
}

// NewTimesheet assembles a timesheet for one company from its entries.
func NewTimesheet(companyName, clientReference string, entries []domain.TimeEntry, now time.Time) Timesheet {
	return Timesheet{
		CompanyName:     companyName,
		ClientReference: clientReference,
		Entries:         entries,
		Summary:         Summarize(entries),
		ReportDate:      now.Format("2006-01-02"),
	}
}

// Subject returns the email subject line for this timesheet.
func (t Timesheet) Subject() string {
	return fmt.Sprintf("Work Hours Report - %s - %s", t.CompanyName, t.ReportDate)
}

var timesheetTmpl = template.Must(template.New("timesheet").Funcs(template.FuncMap{
	"duration": func(seconds int64) string {
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	},
	"hours": func(seconds int64) string {
		return fmt.Sprintf("%.2f", float64(seconds)/3600)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Timesheet - {{.CompanyName}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 20px; }
    .header { background: #2563eb; color: white; padding: 30px; border-radius: 8px; margin-bottom: 20px; }
    .summary { background: #f3f4f6; padding: 15px; border-radius: 8px; margin-bottom: 20px; }
    table { width: 100%; border-collapse: collapse; margin-top: 20px; }
    th { background: #2563eb; color: white; padding: 12px; text-align: left; }
    td { padding: 8px; border: 1px solid #ddd; }
    .right { text-align: right; }
    .footer { margin-top: 30px; padding-top: 20px; border-top: 2px solid #e5e7eb; text-align: center; color: #6b7280; }
  </style>
</head>
<body>
  <div class="header">
    <h1>TimeOS - Work Hours Report</h1>
    <p>Client: {{.CompanyName}}</p>
    {{if .ClientReference}}<p>Reference: {{.ClientReference}}</p>{{end}}
  </div>

  <div class="summary">
    <h2>Summary</h2>
    <p><strong>Total Hours:</strong> {{hours .Summary.TotalSeconds}} hours</p>
    <p><strong>Number of Entries:</strong> {{.Summary.TotalEntries}}</p>
    <p><strong>Report Date:</strong> {{.ReportDate}}</p>
  </div>

  <h2>Detailed Time Entries</h2>
  <table>
    <thead>
      <tr>
        <th>Date</th>
        <th>Employee</th>
        <th>Description</th>
        <th class="right">Duration</th>
      </tr>
    </thead>
    <tbody>
      {{range .Entries}}
      <tr>
        <td>{{.Date}}</td>
        <td>{{.UserName}}</td>
        <td>{{.Description}}</td>
        <td class="right">{{duration .Seconds}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="footer">
    <p>This is an automated report from TimeOS.</p>
    <p>If you have any questions, please contact your account manager.</p>
  </div>
</body>
</html>
`))

// RenderHTML writes the timesheet as an HTML document.
func (t Timesheet) RenderHTML(w io.Writer) error {
	return timesheetTmpl.Execute(w, t)
}
