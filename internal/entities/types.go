package entities

// Source identifies how an entity was extracted.
type Source string

const (
	// SourcePattern marks entities found by the built-in regex patterns.
	SourcePattern Source = "pattern"
	// SourceModel marks entities returned by the external model.
	SourceModel Source = "model"
)

// Entity is a typed, confidence-scored value extracted from free text.
// Start and End are character offsets into the source text; they are only
// meaningful for pattern-derived entities and are -1 otherwise.
type Entity struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
	Start      int     `json:"start,omitempty"`
	End        int     `json:"end,omitempty"`
}
