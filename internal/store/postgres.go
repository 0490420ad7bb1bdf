package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id          UUID PRIMARY KEY,
			session_id  TEXT UNIQUE NOT NULL,
			settings    JSONB NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS user_loyalty (
			id              UUID PRIMARY KEY,
			user_id         UUID NOT NULL REFERENCES users(id),
			loyalty_program TEXT NOT NULL,
			airline         TEXT NOT NULL,
			status          TEXT NOT NULL DEFAULT 'Silver',
			member_number   TEXT,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_user_loyalty_user ON user_loyalty (user_id, created_at DESC);
		CREATE TABLE IF NOT EXISTS search_logs (
			id           BIGSERIAL PRIMARY KEY,
			session_id   TEXT NOT NULL,
			from_airport TEXT NOT NULL,
			to_airport   TEXT NOT NULL,
			travel_date  TEXT NOT NULL,
			travelers    INT NOT NULL DEFAULT 1,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_search_logs_session ON search_logs (session_id, created_at DESC);
	`
	_, err := p.db.ExecContext(ctx, query)
	return err
}

// userID finds or creates the user row for a session.
func (p *Postgres) userID(ctx context.Context, sessionID string, create bool) (string, error) {
	var id string
	err := p.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE session_id = $1", sessionID,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("select user: %w", err)
	}
	if !create {
		return "", nil
	}

	id = uuid.NewString()
	if _, err := p.db.ExecContext(ctx,
		"INSERT INTO users (id, session_id) VALUES ($1, $2) ON CONFLICT (session_id) DO NOTHING",
		id, sessionID,
	); err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	// Re-read in case a concurrent insert won.
	if err := p.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE session_id = $1", sessionID,
	).Scan(&id); err != nil {
		return "", fmt.Errorf("reselect user: %w", err)
	}
	return id, nil
}

func (p *Postgres) Loyalty(ctx context.Context, sessionID string) ([]LoyaltyProgram, error) {
	uid, err := p.userID(ctx, sessionID, false)
	if err != nil {
		return nil, err
	}
	if uid == "" {
		return nil, nil
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, loyalty_program, airline, status, COALESCE(member_number, ''), created_at
		FROM user_loyalty WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, fmt.Errorf("select loyalty: %w", err)
	}
	defer rows.Close()

	var programs []LoyaltyProgram
	for rows.Next() {
		var lp LoyaltyProgram
		if err := rows.Scan(&lp.ID, &lp.Program, &lp.Airline, &lp.Status, &lp.MemberNumber, &lp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan loyalty: %w", err)
		}
		programs = append(programs, lp)
	}
	return programs, rows.Err()
}

func (p *Postgres) SaveLoyalty(ctx context.Context, sessionID string, lp LoyaltyProgram) (LoyaltyProgram, error) {
	uid, err := p.userID(ctx, sessionID, true)
	if err != nil {
		return LoyaltyProgram{}, err
	}

	lp.ID = uuid.NewString()
	if lp.Status == "" {
		lp.Status = "Silver"
	}
	lp.CreatedAt = time.Now().UTC()

	if _, err := p.db.ExecContext(ctx, `
		INSERT INTO user_loyalty (id, user_id, loyalty_program, airline, status, member_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		lp.ID, uid, lp.Program, lp.Airline, lp.Status, lp.MemberNumber, lp.CreatedAt,
	); err != nil {
		return LoyaltyProgram{}, fmt.Errorf("insert loyalty: %w", err)
	}
	return lp, nil
}

func (p *Postgres) Settings(ctx context.Context, sessionID string) (map[string]any, error) {
	var raw []byte
	err := p.db.QueryRowContext(ctx,
		"SELECT settings FROM users WHERE session_id = $1", sessionID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select settings: %w", err)
	}

	settings := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &settings); err != nil {
			return nil, fmt.Errorf("parse settings: %w", err)
		}
	}
	return settings, nil
}

func (p *Postgres) SaveSettings(ctx context.Context, sessionID string, settings map[string]any) error {
	if _, err := p.userID(ctx, sessionID, true); err != nil {
		return err
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if _, err := p.db.ExecContext(ctx,
		"UPDATE users SET settings = $1, updated_at = NOW() WHERE session_id = $2",
		raw, sessionID,
	); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

func (p *Postgres) LogSearch(ctx context.Context, s SearchLog) error {
	if s.SessionID == "" {
		s.SessionID = "anonymous"
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO search_logs (session_id, from_airport, to_airport, travel_date, travelers)
		VALUES ($1, $2, $3, $4, $5)`,
		s.SessionID, s.Origin, s.Destination, s.Date, s.Travelers,
	)
	if err != nil {
		return fmt.Errorf("insert search log: %w", err)
	}
	return nil
}

func (p *Postgres) History(ctx context.Context, sessionID string, limit int) ([]SearchLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := p.db.QueryContext(ctx, `
		SELECT session_id, from_airport, to_airport, travel_date, travelers, created_at
		FROM search_logs WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}
	defer rows.Close()

	var logs []SearchLog
	for rows.Next() {
		var s SearchLog
		if err := rows.Scan(&s.SessionID, &s.Origin, &s.Destination, &s.Date, &s.Travelers, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		logs = append(logs, s)
	}
	return logs, rows.Err()
}
