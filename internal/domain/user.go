package domain

import "time"

// Role controls which surfaces a user can reach.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// User is an employee or administrator in the directory.
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Title              string    `json:"title"`
	Role               Role      `json:"role"`
	AccessCode         string    `json:"access_code"`
	AssignedCompanyIDs []string  `json:"assigned_company_ids"`
	Blocked            bool      `json:"blocked"`
	CreatedAt          time.Time `json:"created_at"`
}

// CanTrack reports whether the user may log time against the given company.
// Admins can track against any company.
func (u User) CanTrack(companyID string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, id := range u.AssignedCompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}
