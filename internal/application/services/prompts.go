package services

import (
	"fmt"
	"strings"

	"github.com/Pranavupp12/review-platform/internal/domain/entities"
)

const intentInstructions = `Classify a search query typed on a business review site.
Return ONLY a JSON object with this schema:
{
  "isNavigation": boolean (true when the user clearly wants one company, category or sub-category page),
  "targetCategory": string or null (must be one of the categories below),
  "targetSubCategory": string or null (must be one of the sub-categories below),
  "targetCompany": string or null (a specific business name mentioned in the query),
  "extractedLocation": string or null (city, region or country mentioned in the query),
  "sortBy": "rating_high" | "rating_low" | "newest" | null
}
Sort rules: "best", "top", "highest rated" -> "rating_high"; "worst", "lowest rated" -> "rating_low"; "new", "newest", "latest", "recent" -> "newest". Otherwise null.
Use the synonym table to map lay terms to categories. Never invent categories that are not listed.`

const filterInstructions = `Turn a search query typed on a business review site into search filters.
Return ONLY a JSON object with this schema:
{
  "keyword": string or null (the business name or service words to match, without location or sort words),
  "category": string or null (must be one of the categories below),
  "subCategoryKeyword": string or null (a sub-category name or the closest service word),
  "extractedLocation": string or null (city, region or country mentioned in the query),
  "sortBy": "rating" | "relevance" ("rating" only when the query asks for best, top or highest rated)
}
Use the synonym table to map lay terms to categories.`

var canonicalAspectTopics = []string{
	"staff",
	"food",
	"service quality",
	"price",
	"cleanliness",
	"ambience",
	"shipping",
	"delivery",
	"product quality",
	"customer support",
	"location",
	"wait time",
	"communication",
}

const aspectInstructions = `Extract aspect-based sentiment from a customer review.
Return ONLY a JSON array. Each element is {"topic": string, "sentiment": "positive" | "negative" | "neutral", "snippet": string}.
Rules:
- topic must be one of: %s. Map raw terms onto these topics, e.g. waiter, manager, cashier, service person -> staff; meal, dish, taste -> food; courier, package arrival -> shipping.
- sentiment: mixed feedback or constructive criticism ("good but could be warmer") is "neutral", not "negative".
- snippet: copy a short phrase from the review EXACTLY as written, same letters and casing. Use a noun with its qualifier ("food was great"), never a single word.
- one element per distinct topic and opinion. Return [] when the review has no opinions.`

func buildIntentPrompt(query string, taxonomy *entities.Taxonomy, synonymContext string) string {
	return fmt.Sprintf("%s\n\nCategories: %s\nSub-categories: %s\nSynonyms:\n%s\nQuery: %q\n",
		intentInstructions,
		strings.Join(taxonomy.CategoryNames, ", "),
		strings.Join(taxonomy.SubCategoryNames, ", "),
		synonymContext,
		query,
	)
}

func buildFilterPrompt(query string, taxonomy *entities.Taxonomy, synonymContext string) string {
	return fmt.Sprintf("%s\n\nCategories: %s\nSub-categories: %s\nSynonyms:\n%s\nQuery: %q\n",
		filterInstructions,
		strings.Join(taxonomy.CategoryNames, ", "),
		strings.Join(taxonomy.SubCategoryNames, ", "),
		synonymContext,
		query,
	)
}

func buildAspectPrompt(reviewText string) string {
	return fmt.Sprintf(aspectInstructions, strings.Join(canonicalAspectTopics, ", ")) +
		"\n\nReview:\n" + reviewText + "\n"
}
