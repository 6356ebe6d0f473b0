package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/clients/postgres"
	"github.com/Pranavupp12/review-platform/internal/infrastructure/observability"
	"github.com/Pranavupp12/review-platform/pkg/config"
	"github.com/Pranavupp12/review-platform/pkg/utils"
)

//go:embed schema.sql
var schema string

// subCategoryParents places each default sub-category under a default category
var subCategoryParents = map[string]string{
	"Lawyers":      "Legal",
	"Dentists":     "Health & Medical",
	"Clinics":      "Health & Medical",
	"Restaurants":  "Restaurants & Food",
	"Cafes":        "Restaurants & Food",
	"Plumbers":     "Home Services",
	"Electricians": "Home Services",
	"Hair Salons":  "Beauty & Wellness",
	"Gyms":         "Fitness",
	"Car Repair":   "Automotive",
	"Hotels":       "Travel & Hotels",
	"Banks":        "Financial Services",
}

type seedCompany struct {
	name, description, city, country, subCategory string
	rating                                        float64
	reviewCount                                   int
	keywords                                      []string
	reviews                                       []string
}

var seedCompanies = []seedCompany{
	{
		name: "Acme Law", description: "Family and divorce lawyers", city: "Austin", country: "US",
		subCategory: "Lawyers", rating: 4.6, reviewCount: 2,
		keywords: []string{"lawyer", "divorce", "family law"},
		reviews: []string{
			"The attorney explained every step clearly and the fees were fair.",
			"Responses to email were slow but the outcome was great.",
		},
	},
	{
		name: "Bright Smile Dental", description: "General and cosmetic dentistry", city: "Pune", country: "IN",
		subCategory: "Dentists", rating: 4.2, reviewCount: 1,
		keywords: []string{"dentist", "teeth", "cleaning"},
		reviews: []string{
			"Friendly staff and a painless cleaning, though parking was a nightmare.",
		},
	},
	{
		name: "Iron Temple Gym", description: "24 hour gym with personal trainers", city: "London", country: "GB",
		subCategory: "Gyms", rating: 3.9, reviewCount: 1,
		keywords: []string{"gym", "fitness", "trainer"},
		reviews: []string{
			"Great equipment but the changing rooms need a proper clean.",
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger("seed", cfg.Env, cfg.LogLevel)

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				search_impressions,
				reviews,
				companies,
				sub_categories,
				categories
			CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	db := goqu.New("postgres", pgClient.DB())
	tx, err := db.Begin()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to begin seed transaction")
	}

	err = tx.Wrap(func() error {
		return seed(ctx, tx)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().Int("companies", len(seedCompanies)).Msg("Seeding completed")
}

func seed(ctx context.Context, tx *goqu.TxDatabase) error {
	taxonomy := entities.DefaultTaxonomy()

	categoryIDs := make(map[string]string, len(taxonomy.CategoryNames))
	for _, name := range taxonomy.CategoryNames {
		id := seedID("category", name)
		categoryIDs[name] = id
		if err := insertIgnore(ctx, tx, "categories", goqu.Record{
			"id":   id,
			"name": name,
			"slug": utils.Slugify(name),
		}); err != nil {
			return err
		}
	}

	subCategoryIDs := make(map[string]string, len(taxonomy.SubCategoryNames))
	for _, name := range taxonomy.SubCategoryNames {
		parent, ok := subCategoryParents[name]
		if !ok {
			log.Warn().Str("sub_category", name).Msg("No parent category, skipping")
			continue
		}
		id := seedID("sub_category", name)
		subCategoryIDs[name] = id
		if err := insertIgnore(ctx, tx, "sub_categories", goqu.Record{
			"id":          id,
			"name":        name,
			"slug":        utils.Slugify(name),
			"category_id": categoryIDs[parent],
		}); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for _, c := range seedCompanies {
		companyID := seedID("company", c.name)
		if err := insertIgnore(ctx, tx, "companies", goqu.Record{
			"id":              companyID,
			"slug":            utils.Slugify(c.name),
			"name":            c.name,
			"description":     c.description,
			"city":            c.city,
			"country":         c.country,
			"rating":          c.rating,
			"review_count":    c.reviewCount,
			"keywords":        pq.Array(c.keywords),
			"category_id":     categoryIDs[subCategoryParents[c.subCategory]],
			"sub_category_id": subCategoryIDs[c.subCategory],
		}); err != nil {
			return err
		}

		for i, body := range c.reviews {
			if err := insertIgnore(ctx, tx, "reviews", goqu.Record{
				"id":         seedID("review", fmt.Sprintf("%s#%d", c.name, i)),
				"company_id": companyID,
				"body":       body,
				"created_at": now.Add(-time.Duration(i) * time.Hour),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedID derives a stable ID so re-running the seed references the same rows
func seedID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+utils.Slugify(name))).String()
}

// insertIgnore makes seeding re-runnable: rows that already exist are skipped
func insertIgnore(ctx context.Context, tx *goqu.TxDatabase, table string, row goqu.Record) error {
	_, err := tx.Insert(table).Rows(row).OnConflict(goqu.DoNothing()).Executor().ExecContext(ctx)
	return err
}
