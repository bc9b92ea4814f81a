package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an overlay lifecycle event.
type Kind string

const (
	KindPushed    Kind = "pushed"
	KindDismissed Kind = "dismissed"
	KindExpired   Kind = "expired"
)

// Entry is one journal row.
type Entry struct {
	ID        string
	OverlayID int64
	Kind      Kind
	Body      string
	CreatedAt time.Time
}

// Store journals overlay lifecycle events.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts an entry, assigning row id and timestamp when absent.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = Now()
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO overlay_events(id, overlay_id, kind, body, created_at)
	VALUES (?, ?, ?, ?, ?);
	`, e.ID, e.OverlayID, string(e.Kind), e.Body, e.CreatedAt)
	return err
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, overlay_id, kind, body, created_at
	FROM overlay_events
	ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.ID, &e.OverlayID, &kind, &e.Body, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep entries.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.ExecContext(ctx, `
	DELETE FROM overlay_events WHERE id NOT IN (
		SELECT id FROM overlay_events ORDER BY created_at DESC, id DESC LIMIT ?
	);`, keep)
	return err
}
