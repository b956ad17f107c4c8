package faq

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultThreshold is the minimum combined similarity score for a match.
const DefaultThreshold = 0.6

// Catalog answers common questions without an external model round trip.
// It is loaded once at startup and mutated rarely through Add and Update,
// which persist the full catalog back to its file.
type Catalog struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	path      string
	threshold float64
	log       zerolog.Logger
}

// Load reads the catalog from the given JSON file. A missing file is not an
// error: the in-code default entries are used instead. A threshold of zero
// falls back to DefaultThreshold.
func Load(path string, threshold float64, log zerolog.Logger) (*Catalog, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	c := &Catalog{
		entries:   DefaultEntries(),
		path:      path,
		threshold: threshold,
		log:       log.With().Str("component", "faq").Logger(),
	}

	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading FAQ catalog %s: %w", path, err)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing FAQ catalog %s: %w", path, err)
	}
	c.entries = entries
	return c, nil
}

// Match scores the message against every paraphrase of every entry and
// returns the best match if it clears the threshold. A miss is a normal
// outcome, not an error: the caller falls back to the generative path.
// When several paraphrases reach the same score, which one wins follows
// catalog iteration order and is not guaranteed.
func (c *Catalog) Match(message string) (*Match, bool) {
	lowered := strings.ToLower(message)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var best *Match
	bestScore := 0.0

	for id, entry := range c.entries {
		for _, question := range entry.Questions {
			q := strings.ToLower(question)
			score := 0.7*Ratio(lowered, q) + 0.3*keywordScore(lowered, q)
			if score > bestScore && score >= c.threshold {
				bestScore = score
				best = &Match{
					ID:       id,
					Question: question,
					Answer:   entry.Answer,
					Category: entry.Category,
					Score:    score,
				}
			}
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}

// keywordScore is the share of the question's keywords present in the user
// message, after stop-word removal. A question with no keywords scores 0.
func keywordScore(message, question string) float64 {
	messageWords := keywords(message)
	questionWords := keywords(question)
	if len(questionWords) == 0 {
		return 0
	}

	hits := 0
	for w := range questionWords {
		if messageWords[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(questionWords))
}

func keywords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		if !stopWords[w] {
			words[w] = true
		}
	}
	return words
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "could": true, "should": true, "may": true, "might": true,
	"can": true, "i": true, "you": true, "he": true, "she": true, "it": true,
	"we": true, "they": true, "my": true, "your": true, "his": true,
	"her": true, "its": true, "our": true, "their": true,
}

// Search returns entries with a question containing the query, optionally
// filtered by category. At most one result per entry.
func (c *Catalog) Search(query, category string) []SearchResult {
	needle := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var results []SearchResult
	for id, entry := range c.entries {
		if category != "" && entry.Category != category {
			continue
		}
		for _, question := range entry.Questions {
			if strings.Contains(strings.ToLower(question), needle) {
				results = append(results, SearchResult{
					ID:       id,
					Question: question,
					Answer:   entry.Answer,
					Category: entry.Category,
				})
				break
			}
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// Categories returns the sorted set of categories in the catalog.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	for _, entry := range c.entries {
		seen[entry.Category] = true
	}

	categories := make([]string, 0, len(seen))
	for cat := range seen {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	return categories
}

// Get returns the entry with the given id.
func (c *Catalog) Get(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[id]
	return entry, ok
}

// Entries returns a copy of the full catalog keyed by entry id.
func (c *Catalog) Entries() map[string]Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Entry, len(c.entries))
	for id, entry := range c.entries {
		out[id] = entry
	}
	return out
}

// Add inserts or replaces an entry and persists the catalog. A persistence
// failure is logged; the in-memory change stands.
func (c *Catalog) Add(id string, questions []string, answer, category string) {
	if category == "" {
		category = "general"
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = Entry{Questions: questions, Answer: answer, Category: category}
	c.persistLocked()
}

// Update applies the non-nil fields of upd to an existing entry and persists
// the catalog. Returns false if the id is unknown.
func (c *Catalog) Update(id string, upd EntryUpdate) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return false
	}
	if upd.Questions != nil {
		entry.Questions = upd.Questions
	}
	if upd.Answer != nil {
		entry.Answer = *upd.Answer
	}
	if upd.Category != nil {
		entry.Category = *upd.Category
	}
	c.entries[id] = entry
	c.persistLocked()
	return true
}

// persistLocked re-serializes the full catalog to the backing file. Must be
// called with the write lock held.
func (c *Catalog) persistLocked() {
	if c.path == "" {
		return
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		c.log.Error().Err(err).Msg("marshalling FAQ catalog")
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		c.log.Error().Err(err).Str("path", c.path).Msg("creating FAQ catalog directory")
		return
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		c.log.Error().Err(err).Str("path", c.path).Msg("saving FAQ catalog")
	}
}
