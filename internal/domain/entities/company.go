package entities

// CompanySummary is the read-only projection of a company used in search results
type CompanySummary struct {
	ID          string  `json:"id" db:"id"`
	Slug        string  `json:"slug" db:"slug"`
	Name        string  `json:"name" db:"name"`
	LogoImage   string  `json:"logoImage,omitempty" db:"logo_image"`
	WebsiteURL  string  `json:"websiteUrl,omitempty" db:"website_url"`
	Address     string  `json:"address,omitempty" db:"address"`
	City        string  `json:"city,omitempty" db:"city"`
	Country     string  `json:"country,omitempty" db:"country"`
	Claimed     bool    `json:"claimed" db:"claimed"`
	Rating      float64 `json:"rating" db:"rating"`
	ReviewCount int     `json:"reviewCount" db:"review_count"`
}

// CompanySearchCriteria is the store-level query built from SearchFilters.
// Empty fields add no constraint. Tags switches the query to keyword-tag membership.
type CompanySearchCriteria struct {
	Keyword     string
	Category    string
	SubCategory string
	Location    string
	Tags        []string
	SortBy      SearchSort
	Limit       int
}

// HasStructuredFilter reports whether any containment filter is set
func (c CompanySearchCriteria) HasStructuredFilter() bool {
	return c.Keyword != "" || c.Category != "" || c.SubCategory != "" || c.Location != ""
}
