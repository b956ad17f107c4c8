package faq

// Entry is one FAQ topic: an answer plus the paraphrase questions that map
// to it.
type Entry struct {
	Questions []string `json:"questions"`
	Answer    string   `json:"answer"`
	Category  string   `json:"category"`
}

// Match describes the best-scoring catalog entry for a message.
type Match struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// SearchResult is one hit from a substring search over the catalog.
type SearchResult struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// EntryUpdate holds the fields of an Update call; nil fields are left
// unchanged.
type EntryUpdate struct {
	Questions []string `json:"questions,omitempty"`
	Answer    *string  `json:"answer,omitempty"`
	Category  *string  `json:"category,omitempty"`
}
