package entities

import "regexp"

// patternConfidence is the fixed confidence for regex-derived entities.
const patternConfidence = 0.9

// namedPattern pairs an entity type with its regex. Patterns with a capture
// group (order_number, product_id) carry an explicit prefix in the match;
// the captured group is the entity value.
type namedPattern struct {
	entityType string
	re         *regexp.Regexp
}

// patterns is applied in order; earlier matches win ties during deduplication.
var patterns = []namedPattern{
	{"order_number", regexp.MustCompile(`(?i)\b(?:order|order\s*#|order\s*number)[:\s]*([A-Z0-9]{6,})\b`)},
	{"email", regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"phone", regexp.MustCompile(`(?i)\b(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`)},
	{"product_id", regexp.MustCompile(`(?i)\b(?:product|item|sku)[:\s]*([A-Z0-9]{3,})\b`)},
	{"amount", regexp.MustCompile(`(?i)\$?\d+(?:\.\d{2})?`)},
	{"date", regexp.MustCompile(`(?i)\b(?:today|tomorrow|yesterday|\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`)},
}
