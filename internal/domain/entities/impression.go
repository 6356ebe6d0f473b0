package entities

import "time"

// ImpressionKey identifies one impression counter row
type ImpressionKey struct {
	CompanyID       string    `json:"company_id" db:"company_id"`
	NormalizedQuery string    `json:"normalized_query" db:"normalized_query"`
	Location        string    `json:"location" db:"location"`
	UserRegion      string    `json:"user_region" db:"user_region"`
	Date            time.Time `json:"date" db:"date"`
}

// DayBucket truncates t to its UTC calendar day
func DayBucket(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
