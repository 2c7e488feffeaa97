package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"timeos/internal/domain"
)

var csvHeader = []string{
	"Date",
	"Employee Name",
	"Job Title",
	"Company",
	"Description",
	"Hours",
	"Minutes",
	"Total Hours (Decimal)",
}

// WriteCSV serializes entries in the export column order.
func WriteCSV(w io.Writer, entries []domain.TimeEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.Date,
			e.UserName,
			e.UserTitle,
			e.CompanyName,
			e.Description,
			fmt.Sprintf("%d", e.Hours()),
			fmt.Sprintf("%d", e.Minutes()),
			fmt.Sprintf("%.2f", e.DecimalHours()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
