package entities

// Category is a top-level taxonomy entry
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// SubCategory is a taxonomy entry nested under a category.
// CategorySlug is filled by joins so routes can be built without a second lookup.
type SubCategory struct {
	ID           string `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Slug         string `json:"slug" db:"slug"`
	CategoryID   string `json:"category_id" db:"category_id"`
	CategorySlug string `json:"category_slug" db:"category_slug"`
}

// Taxonomy is a per-request snapshot of the live category and sub-category names
type Taxonomy struct {
	CategoryNames    []string `json:"category_names"`
	SubCategoryNames []string `json:"sub_category_names"`
}

// DefaultTaxonomy is served when the catalog cannot be read
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		CategoryNames: []string{
			"Legal",
			"Health & Medical",
			"Restaurants & Food",
			"Home Services",
			"Beauty & Wellness",
			"Fitness",
			"Automotive",
			"Shopping",
			"Travel & Hotels",
			"Financial Services",
			"Education",
		},
		SubCategoryNames: []string{
			"Lawyers",
			"Dentists",
			"Clinics",
			"Restaurants",
			"Cafes",
			"Plumbers",
			"Electricians",
			"Hair Salons",
			"Gyms",
			"Car Repair",
			"Hotels",
			"Banks",
		},
	}
}
