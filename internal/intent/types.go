package intent

// Definition describes one recognizable intent.
type Definition struct {
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// Result is the outcome of classifying one message.
type Result struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// Fallback intent used when classification fails or returns an unknown label.
const (
	FallbackIntent     = "general_inquiry"
	FallbackConfidence = 0.5
)
