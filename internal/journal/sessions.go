package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gatefield/gatefield/internal/events"
)

// SessionRecord is one row of the sessions table.
type SessionRecord struct {
	ID        string     `json:"id"`
	AccountID uint32     `json:"account_id"`
	EntityID  uint64     `json:"entity_id"`
	ZoneID    int32      `json:"zone_id"`
	ChannelID int32      `json:"channel_id"`
	Messages  int64      `json:"messages"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	EndReason string     `json:"end_reason,omitempty"`
}

// Journal writes one row per in-game session.
type Journal struct {
	db     *Database
	logger zerolog.Logger

	mu       sync.Mutex
	current  string
	messages int64
}

// Open opens the journal database at path and creates its schema.
func Open(path string) (*Journal, error) {
	database, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}

	j := &Journal{
		db:     database,
		logger: log.With().Str("component", "journal").Logger(),
	}
	if err := j.migrate(context.Background()); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			account_id INTEGER NOT NULL,
			entity_id INTEGER NOT NULL,
			zone_id INTEGER NOT NULL DEFAULT 0,
			channel_id INTEGER NOT NULL DEFAULT 0,
			messages INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			ended_at INTEGER,
			end_reason TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	`
	_, err := j.db.Exec(ctx, schema)
	return err
}

// Attach records sessions from bus: a row opens on entered_game and closes
// on disconnected. Inbound messages are counted against the open row.
func (j *Journal) Attach(bus *events.EventBus) {
	bus.Subscribe(events.EventEnteredGame, "journal", func(ctx context.Context, e events.Event) error {
		s, ok := e.Payload.(events.Session)
		if !ok {
			return fmt.Errorf("unexpected payload %T", e.Payload)
		}
		_, err := j.Begin(ctx, s, time.Now())
		return err
	})
	bus.Subscribe(events.EventSessionUpdate, "journal", func(ctx context.Context, e events.Event) error {
		s, ok := e.Payload.(events.Session)
		if !ok {
			return fmt.Errorf("unexpected payload %T", e.Payload)
		}
		return j.Update(ctx, s)
	})
	bus.Subscribe(events.EventDisconnected, "journal", func(ctx context.Context, e events.Event) error {
		p, _ := e.Payload.(events.DisconnectedPayload)
		return j.End(ctx, p.Reason, time.Now())
	})
	bus.SubscribeAll("journal", func(ctx context.Context, e events.Event) error {
		if e.Type.IsMessage() {
			j.mu.Lock()
			if j.current != "" {
				j.messages++
			}
			j.mu.Unlock()
		}
		return nil
	})
}

// Begin opens a session row and returns its id. When a row is already open
// (a repeated ENTER_GAME after a zone change) that row is updated instead.
func (j *Journal) Begin(ctx context.Context, s events.Session, at time.Time) (string, error) {
	j.mu.Lock()
	current := j.current
	j.mu.Unlock()

	if current != "" {
		return current, j.Update(ctx, s)
	}

	id := uuid.NewString()
	_, err := j.db.Exec(ctx,
		`INSERT INTO sessions (id, account_id, entity_id, zone_id, channel_id, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, int64(s.AccountID), int64(s.EntityID), s.ZoneID, s.ChannelID, at.UnixMilli())
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}

	j.mu.Lock()
	j.current = id
	j.messages = 0
	j.mu.Unlock()

	j.logger.Info().Str("session", id).Uint64("entity", s.EntityID).Msg("session started")
	return id, nil
}

// Update rewrites the session fields of the open row, if any.
func (j *Journal) Update(ctx context.Context, s events.Session) error {
	j.mu.Lock()
	id := j.current
	j.mu.Unlock()
	if id == "" {
		return nil
	}

	_, err := j.db.Exec(ctx,
		`UPDATE sessions SET entity_id = ?, zone_id = ?, channel_id = ? WHERE id = ?`,
		int64(s.EntityID), s.ZoneID, s.ChannelID, id)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", id, err)
	}
	return nil
}

// End closes the open row. It is a no-op when no session is open.
func (j *Journal) End(ctx context.Context, reason string, at time.Time) error {
	j.mu.Lock()
	id, messages := j.current, j.messages
	j.current, j.messages = "", 0
	j.mu.Unlock()
	if id == "" {
		return nil
	}

	_, err := j.db.Exec(ctx,
		`UPDATE sessions SET ended_at = ?, end_reason = ?, messages = ? WHERE id = ?`,
		at.UnixMilli(), reason, messages, id)
	if err != nil {
		return fmt.Errorf("failed to close session %s: %w", id, err)
	}

	j.logger.Info().Str("session", id).Str("reason", reason).Int64("messages", messages).Msg("session ended")
	return nil
}

// Current returns the id of the open session, or "".
func (j *Journal) Current() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.current
}

// Recent returns up to n sessions, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]SessionRecord, error) {
	if n <= 0 {
		n = 20
	}

	rows, err := j.db.Query(ctx, `
		SELECT id, account_id, entity_id, zone_id, channel_id, messages, started_at, ended_at, end_reason
		FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var (
			r         SessionRecord
			accountID int64
			entityID  int64
			startedAt int64
			endedAt   sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &accountID, &entityID, &r.ZoneID, &r.ChannelID, &r.Messages,
			&startedAt, &endedAt, &r.EndReason); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		r.AccountID = uint32(accountID)
		r.EntityID = uint64(entityID)
		r.StartedAt = time.UnixMilli(startedAt)
		if endedAt.Valid {
			t := time.UnixMilli(endedAt.Int64)
			r.EndedAt = &t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (j *Journal) Close() error {
	return j.db.Close()
}
