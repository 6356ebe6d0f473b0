package entities

import (
	"fmt"
	"strings"
)

// Sentiment is the polarity attached to a review aspect
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ParseSentiment maps free text to a known Sentiment
func ParseSentiment(s string) (Sentiment, bool) {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive, true
	case SentimentNegative:
		return SentimentNegative, true
	case SentimentNeutral:
		return SentimentNeutral, true
	}
	return "", false
}

// AspectTriple is one topic/sentiment/snippet finding in a review.
// Snippet is always a verbatim substring of the review it came from.
type AspectTriple struct {
	Topic     string    `json:"topic"`
	Sentiment Sentiment `json:"sentiment"`
	Snippet   string    `json:"snippet"`
}

// Encode renders the storage form "topic:sentiment:snippet".
// A colon inside the snippet is kept as-is; see ParseAspectTriple.
func (a AspectTriple) Encode() string {
	return fmt.Sprintf("%s:%s:%s", a.Topic, a.Sentiment, a.Snippet)
}

// ParseAspectTriple splits an encoded triple on its first two colons only, so snippets
// containing colons survive. Consumers splitting on every colon will not round-trip.
func ParseAspectTriple(encoded string) (AspectTriple, error) {
	parts := strings.SplitN(encoded, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return AspectTriple{}, fmt.Errorf("malformed aspect %q", encoded)
	}
	sentiment, ok := ParseSentiment(parts[1])
	if !ok {
		return AspectTriple{}, fmt.Errorf("malformed aspect %q: unknown sentiment %q", encoded, parts[1])
	}
	return AspectTriple{Topic: parts[0], Sentiment: sentiment, Snippet: parts[2]}, nil
}
