package entities

import "time"

// Review is the slice of a stored review that aspect extraction reads and writes
type Review struct {
	ID        string    `json:"id" db:"id"`
	CompanyID string    `json:"company_id" db:"company_id"`
	Body      string    `json:"body" db:"body"`
	Aspects   []string  `json:"aspects,omitempty" db:"aspects"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
