package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultMaxAge is how long an idle conversation survives before the
// eviction sweep removes it.
const DefaultMaxAge = 24 * time.Hour

// entry pairs a conversation with its own lock. Mutations on different
// conversations never contend with each other; only the index map is shared.
type entry struct {
	mu      sync.Mutex
	conv    *Conversation
	evicted bool
}

// Store is the authoritative, concurrency-safe registry of live conversations.
// Every operation on an unknown id returns a false/empty/nil result, never an
// error.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	maxAge  time.Duration
	log     zerolog.Logger
}

// NewStore creates an empty store. A maxAge of zero falls back to DefaultMaxAge.
func NewStore(maxAge time.Duration, log zerolog.Logger) *Store {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Store{
		entries: make(map[string]*entry),
		maxAge:  maxAge,
		log:     log.With().Str("component", "conversation").Logger(),
	}
}

// Create allocates a new conversation and returns its id. Never fails.
func (s *Store) Create() string {
	now := time.Now()
	conv := &Conversation{
		ID:             uuid.New().String(),
		CreatedAt:      now,
		LastActivityAt: now,
		Messages:       []Message{},
		Context:        make(map[string]any),
		UserInfo:       make(map[string]any),
	}

	s.mu.Lock()
	s.entries[conv.ID] = &entry{conv: conv}
	s.mu.Unlock()

	return conv.ID
}

// get looks up the entry for id without taking its lock.
func (s *Store) get(id string) *entry {
	s.mu.RLock()
	e := s.entries[id]
	s.mu.RUnlock()
	return e
}

// AddMessage appends a message to the conversation and returns false if the
// id is unknown.
func (s *Store) AddMessage(id string, role Role, content string, meta *Metadata) bool {
	e := s.get(id)
	if e == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return false
	}
	appendMessage(e.conv, role, content, meta)
	return true
}

// appendMessage must be called with the entry lock held.
func appendMessage(conv *Conversation, role Role, content string, meta *Metadata) {
	now := time.Now()
	conv.Messages = append(conv.Messages, Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: now,
		Metadata:  meta,
	})
	conv.LastActivityAt = now
}

// Get returns a snapshot of the conversation, or nil if the id is unknown.
func (s *Store) Get(id string) *Conversation {
	e := s.get(id)
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return nil
	}
	return copyConversation(e.conv)
}

// GetMessages returns the most recent limit messages in chronological order.
// A limit of zero or less returns every message. Unknown ids yield an empty
// slice.
func (s *Store) GetMessages(id string, limit int) []Message {
	e := s.get(id)
	if e == nil {
		return []Message{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return []Message{}
	}

	msgs := e.conv.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// UpdateContext shallow-merges updates into the conversation context:
// unknown keys are added, known keys overwritten.
func (s *Store) UpdateContext(id string, updates map[string]any) bool {
	e := s.get(id)
	if e == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return false
	}
	for k, v := range updates {
		e.conv.Context[k] = v
	}
	e.conv.LastActivityAt = time.Now()
	return true
}

// SetUserInfo shallow-merges info into the conversation's user info.
func (s *Store) SetUserInfo(id string, info map[string]any) bool {
	e := s.get(id)
	if e == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return false
	}
	for k, v := range info {
		e.conv.UserInfo[k] = v
	}
	return true
}

// Escalate marks the conversation as escalated and records a system message
// documenting the handoff. Repeated calls keep the flag set and update the
// reason and time.
func (s *Store) Escalate(id string, reason string) bool {
	e := s.get(id)
	if e == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return false
	}

	now := time.Now()
	e.conv.Escalated = true
	e.conv.EscalationReason = reason
	e.conv.EscalationTime = &now

	displayReason := reason
	if displayReason == "" {
		displayReason = "User request"
	}
	appendMessage(e.conv, RoleSystem,
		"Conversation escalated to human agent. Reason: "+displayReason,
		&Metadata{Event: EventEscalation, Reason: reason})
	return true
}

// Resolve marks the conversation as resolved. The satisfaction score is
// caller-supplied and not range-checked here.
func (s *Store) Resolve(id string, satisfactionScore *int) bool {
	e := s.get(id)
	if e == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return false
	}

	now := time.Now()
	e.conv.Resolved = true
	e.conv.ResolvedAt = &now
	if satisfactionScore != nil {
		score := *satisfactionScore
		e.conv.SatisfactionScore = &score
	}
	return true
}

// Summarize returns a digest of the conversation, or nil for unknown ids.
func (s *Store) Summarize(id string) *Summary {
	e := s.get(id)
	if e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return nil
	}
	sum := summarize(e.conv)
	return &sum
}

// summarize must be called with the entry lock held.
func summarize(conv *Conversation) Summary {
	counts := make(map[Role]int)
	var intents []string
	seen := make(map[string]bool)

	for _, msg := range conv.Messages {
		counts[msg.Role]++
		if msg.Role == RoleAssistant && msg.Metadata != nil && msg.Metadata.Intent != "" {
			if !seen[msg.Metadata.Intent] {
				seen[msg.Metadata.Intent] = true
				intents = append(intents, msg.Metadata.Intent)
			}
		}
	}

	var duration *float64
	if len(conv.Messages) > 0 {
		d := conv.Messages[len(conv.Messages)-1].Timestamp.Sub(conv.Messages[0].Timestamp).Seconds()
		duration = &d
	}

	return Summary{
		ConversationID:    conv.ID,
		CreatedAt:         conv.CreatedAt,
		LastActivity:      conv.LastActivityAt,
		DurationSeconds:   duration,
		MessageCount:      len(conv.Messages),
		MessageCounts:     counts,
		IntentsDiscussed:  intents,
		Escalated:         conv.Escalated,
		Resolved:          conv.Resolved,
		SatisfactionScore: conv.SatisfactionScore,
		UserInfo:          copyMap(conv.UserInfo),
	}
}

// ListActive returns summaries of every conversation that is unresolved and
// has seen activity within the max age. The result is a point-in-time
// snapshot; it may lag concurrent writers.
func (s *Store) ListActive() []Summary {
	now := time.Now()

	s.mu.RLock()
	snapshot := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		snapshot = append(snapshot, e)
	}
	s.mu.RUnlock()

	var active []Summary
	for _, e := range snapshot {
		e.mu.Lock()
		if !e.evicted && !e.conv.Resolved && now.Sub(e.conv.LastActivityAt) < s.maxAge {
			active = append(active, summarize(e.conv))
		}
		e.mu.Unlock()
	}
	return active
}

// Export returns a deep copy of the full conversation for handoff or
// analytics, or nil for unknown ids. Timestamps render as RFC 3339 when the
// result is serialized.
func (s *Store) Export(id string) *Conversation {
	return s.Get(id)
}

// Search returns summaries of conversations whose message content contains
// the query, case-insensitively. Each conversation is checked until its
// first hit; collection stops once limit summaries are gathered. Result
// order follows store iteration order and is not ranked.
func (s *Store) Search(query string, limit int) []Summary {
	if limit <= 0 {
		limit = 10
	}
	needle := strings.ToLower(query)

	s.mu.RLock()
	snapshot := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		snapshot = append(snapshot, e)
	}
	s.mu.RUnlock()

	var results []Summary
	for _, e := range snapshot {
		e.mu.Lock()
		if !e.evicted {
			for _, msg := range e.conv.Messages {
				if strings.Contains(strings.ToLower(msg.Content), needle) {
					results = append(results, summarize(e.conv))
					break
				}
			}
		}
		e.mu.Unlock()

		if len(results) >= limit {
			break
		}
	}
	return results
}

// Delete removes the conversation immediately. Returns false for unknown ids.
func (s *Store) Delete(id string) bool {
	e := s.get(id)
	if e == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evicted {
		return false
	}
	e.evicted = true

	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return true
}

// EvictExpired removes every conversation idle for longer than the max age
// and returns the number removed. Eviction takes each conversation's lock,
// so it never races an in-flight mutation on the same id.
func (s *Store) EvictExpired() int {
	now := time.Now()

	s.mu.RLock()
	snapshot := make(map[string]*entry, len(s.entries))
	for id, e := range s.entries {
		snapshot[id] = e
	}
	s.mu.RUnlock()

	removed := 0
	for id, e := range snapshot {
		e.mu.Lock()
		if !e.evicted && now.Sub(e.conv.LastActivityAt) > s.maxAge {
			e.evicted = true
			s.mu.Lock()
			delete(s.entries, id)
			s.mu.Unlock()
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// Len reports the number of live conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartReaper runs EvictExpired on the given interval until ctx is cancelled.
func (s *Store) StartReaper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.EvictExpired(); n > 0 {
					s.log.Info().Int("removed", n).Msg("evicted expired conversations")
				}
			}
		}
	}()
}

func copyConversation(conv *Conversation) *Conversation {
	out := *conv
	out.Messages = make([]Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	out.Context = copyMap(conv.Context)
	out.UserInfo = copyMap(conv.UserInfo)
	return &out
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
