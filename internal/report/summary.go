package report

import "timeos/internal/domain"

// Summary aggregates an entry list for reports and the AI prompt.
type Summary struct {
	TotalEntries int
	TotalSeconds int64
	ByCompany    map[string]int64 // seconds per company name
	ByUser       map[string]int64 // seconds per employee name
}

// TotalHours returns the total as fractional hours.
func (s Summary) TotalHours() float64 { return float64(s.TotalSeconds) / 3600 }

// Summarize totals an entry list. Entries without a company or user name
// are grouped under "Unknown".
func Summarize(entries []domain.TimeEntry) Summary {
	s := Summary{
		TotalEntries: len(entries),
		ByCompany:    make(map[string]int64),
		ByUser:       make(map[string]int64),
	}
	for _, e := range entries {
		company := e.CompanyName
		if company == "" {
			company = "Unknown"
		}
		user := e.UserName
		if user == "" {
			user = "Unknown"
		}
		s.TotalSeconds += e.Seconds
		s.ByCompany[company] += e.Seconds
		s.ByUser[user] += e.Seconds
	}
	return s
}

// FilterByCompany returns the entries billed to the named company.
func FilterByCompany(entries []domain.TimeEntry, companyName string) []domain.TimeEntry {
	var out []domain.TimeEntry
	for _, e := range entries {
		if e.CompanyName == companyName {
			out = append(out, e)
		}
	}
	return out
}
