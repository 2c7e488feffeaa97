package domain

import "time"

// TimeEntry is one finished tracked interval. CompanyName is resolved when
// the timer stops and stored denormalized, so later renames or deletions of
// the company do not rewrite history.
type TimeEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserTitle   string    `json:"user_title"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	Description string    `json:"description"`
	Seconds     int64     `json:"seconds"`
	Date        string    `json:"date"` // calendar day the entry was recorded, YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
}

// Hours returns the whole-hour part of the duration.
func (e TimeEntry) Hours() int64 { return e.Seconds / 3600 }

// Minutes returns the minute part of the duration after whole hours.
func (e TimeEntry) Minutes() int64 { return (e.Seconds % 3600) / 60 }

// DecimalHours returns the duration as fractional hours.
func (e TimeEntry) DecimalHours() float64 { return float64(e.Seconds) / 3600 }
