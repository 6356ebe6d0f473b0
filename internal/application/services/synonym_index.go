package services

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"
)

// defaultSynonyms maps lay terms to canonical category names
var defaultSynonyms = map[string]string{
	"lawyer":      "Legal",
	"lawyers":     "Legal",
	"attorney":    "Legal",
	"solicitor":   "Legal",
	"notary":      "Legal",
	"doctor":      "Health & Medical",
	"clinic":      "Health & Medical",
	"dentist":     "Health & Medical",
	"hospital":    "Health & Medical",
	"pharmacy":    "Health & Medical",
	"restaurant":  "Restaurants & Food",
	"food":        "Restaurants & Food",
	"pizza":       "Restaurants & Food",
	"cafe":        "Restaurants & Food",
	"coffee":      "Restaurants & Food",
	"bakery":      "Restaurants & Food",
	"plumber":     "Home Services",
	"electrician": "Home Services",
	"cleaner":     "Home Services",
	"movers":      "Home Services",
	"salon":       "Beauty & Wellness",
	"barber":      "Beauty & Wellness",
	"spa":         "Beauty & Wellness",
	"gym":         "Fitness",
	"yoga":        "Fitness",
	"trainer":     "Fitness",
	"mechanic":    "Automotive",
	"garage":      "Automotive",
	"car wash":    "Automotive",
	"hotel":       "Travel & Hotels",
	"airline":     "Travel & Hotels",
	"bank":        "Financial Services",
	"insurance":   "Financial Services",
	"accountant":  "Financial Services",
	"school":      "Education",
	"tutor":       "Education",
}

// SynonymIndex maps common lay terms to canonical category names. Immutable after construction.
type SynonymIndex struct {
	terms   map[string]string
	context string
}

// NewSynonymIndex builds the index from the built-in table
func NewSynonymIndex() *SynonymIndex {
	return NewSynonymIndexFrom(defaultSynonyms)
}

// NewSynonymIndexFrom builds an index from the given table
func NewSynonymIndexFrom(table map[string]string) *SynonymIndex {
	terms := make(map[string]string, len(table))
	for term, category := range table {
		terms[strings.ToLower(strings.TrimSpace(term))] = category
	}
	return &SynonymIndex{
		terms:   terms,
		context: renderSynonymContext(terms),
	}
}

// LoadSynonymIndex merges a JSON file of {"Category": ["term", ...]} over the
// built-in table. An empty path returns the built-in index.
func LoadSynonymIndex(path string) (*SynonymIndex, error) {
	if path == "" {
		return NewSynonymIndex(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonyms: %w", err)
	}

	var grouped map[string][]string
	if err := json.Unmarshal(data, &grouped); err != nil {
		return nil, fmt.Errorf("parse synonyms %s: %w", path, err)
	}

	table := maps.Clone(defaultSynonyms)
	for category, terms := range grouped {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		for _, term := range terms {
			if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
				table[term] = category
			}
		}
	}
	return NewSynonymIndexFrom(table), nil
}

// Lookup returns the canonical category for term
func (s *SynonymIndex) Lookup(term string) (string, bool) {
	category, ok := s.terms[strings.ToLower(strings.TrimSpace(term))]
	return category, ok
}

// Context renders the table grouped by category, one line per category
func (s *SynonymIndex) Context() string {
	return s.context
}

func renderSynonymContext(terms map[string]string) string {
	grouped := make(map[string][]string)
	for term, category := range terms {
		grouped[category] = append(grouped[category], term)
	}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var b strings.Builder
	for _, category := range categories {
		list := grouped[category]
		sort.Strings(list)
		b.WriteString(category)
		b.WriteString(": ")
		b.WriteString(strings.Join(list, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}
