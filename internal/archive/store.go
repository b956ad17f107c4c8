package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/omarzayed/supportdesk/internal/conversation"
)

// ErrNotFound is returned when no archived conversation has the given ID.
var ErrNotFound = errors.New("archived conversation not found")

// Record is a summary row of an archived conversation.
type Record struct {
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	ArchivedAt        time.Time `json:"archived_at"`
	MessageCount      int       `json:"message_count"`
	Escalated         bool      `json:"escalated"`
	Resolved          bool      `json:"resolved"`
	SatisfactionScore *int      `json:"satisfaction_score,omitempty"`
}

// Store provides persistence for completed conversations.
type Store struct {
	db *DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *DB) *Store {
	return &Store{db: database}
}

// Save archives a conversation snapshot. Saving the same ID again
// replaces the stored copy.
func (s *Store) Save(ctx context.Context, conv *conversation.Conversation) error {
	if conv == nil {
		return errors.New("nil conversation")
	}

	payload, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("marshalling conversation: %w", err)
	}

	var score sql.NullInt64
	if conv.SatisfactionScore != nil {
		score = sql.NullInt64{Int64: int64(*conv.SatisfactionScore), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO archived_conversations (
			id, created_at, archived_at, message_count,
			escalated, resolved, satisfaction_score, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			archived_at = excluded.archived_at,
			message_count = excluded.message_count,
			escalated = excluded.escalated,
			resolved = excluded.resolved,
			satisfaction_score = excluded.satisfaction_score,
			payload = excluded.payload`,
		conv.ID,
		conv.CreatedAt.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
		len(conv.Messages),
		conv.Escalated,
		conv.Resolved,
		score,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("inserting archived conversation: %w", err)
	}
	return nil
}

// Get returns the full archived conversation, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*conversation.Conversation, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM archived_conversations WHERE id = ?`, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying archived conversation: %w", err)
	}

	var conv conversation.Conversation
	if err := json.Unmarshal([]byte(payload), &conv); err != nil {
		return nil, fmt.Errorf("unmarshalling conversation payload: %w", err)
	}
	return &conv, nil
}

// List returns summary records, newest archives first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, archived_at, message_count,
		       escalated, resolved, satisfaction_score
		FROM archived_conversations
		ORDER BY archived_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing archived conversations: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec                   Record
			createdAt, archivedAt string
			score                 sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &createdAt, &archivedAt, &rec.MessageCount,
			&rec.Escalated, &rec.Resolved, &score); err != nil {
			return nil, fmt.Errorf("scanning archive row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		rec.ArchivedAt, _ = time.Parse(time.RFC3339Nano, archivedAt)
		if score.Valid {
			v := int(score.Int64)
			rec.SatisfactionScore = &v
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes an archived conversation. Returns ErrNotFound when
// no row matched.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM archived_conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting archived conversation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
