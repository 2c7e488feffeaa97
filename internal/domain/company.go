package domain

import "time"

// Company is a client that tracked time is billed against.
type Company struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ClientReference string    `json:"client_reference"`
	ClientEmail     string    `json:"client_email"`
	CreatedAt       time.Time `json:"created_at"`
}
