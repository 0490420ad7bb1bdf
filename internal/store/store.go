// Package store persists user-facing plumbing data: loyalty programs, user
// settings, and search history. The engine never depends on it; analytics
// writes are fire-and-forget.
package store

import (
	"context"
	"time"
)

// LoyaltyProgram is one frequent-flyer membership.
type LoyaltyProgram struct {
	ID           string    `json:"id"`
	Program      string    `json:"loyalty_program"`
	Airline      string    `json:"airline"`
	Status       string    `json:"status"`
	MemberNumber string    `json:"member_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SearchLog records one flight search for history.
type SearchLog struct {
	SessionID   string    `json:"session_id"`
	Origin      string    `json:"from"`
	Destination string    `json:"to"`
	Date        string    `json:"date"`
	Travelers   int       `json:"travelers"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the repository interface for persistence.
type Store interface {
	// Migrate runs database migrations.
	Migrate(ctx context.Context) error
	// Loyalty returns a session's saved programs, newest first.
	Loyalty(ctx context.Context, sessionID string) ([]LoyaltyProgram, error)
	// SaveLoyalty stores a program, creating the session's user on demand.
	SaveLoyalty(ctx context.Context, sessionID string, p LoyaltyProgram) (LoyaltyProgram, error)
	// Settings returns a session's settings blob.
	Settings(ctx context.Context, sessionID string) (map[string]any, error)
	// SaveSettings overwrites a session's settings blob.
	SaveSettings(ctx context.Context, sessionID string, settings map[string]any) error
	// LogSearch appends a search-history row.
	LogSearch(ctx context.Context, s SearchLog) error
	// History returns a session's recent searches, newest first.
	History(ctx context.Context, sessionID string, limit int) ([]SearchLog, error)
}

// Noop satisfies Store when no database is configured. Reads return empty
// results; writes succeed silently.
type Noop struct{}

func (Noop) Migrate(context.Context) error { return nil }

func (Noop) Loyalty(context.Context, string) ([]LoyaltyProgram, error) { return nil, nil }

func (Noop) SaveLoyalty(_ context.Context, _ string, p LoyaltyProgram) (LoyaltyProgram, error) {
	return p, nil
}

func (Noop) Settings(context.Context, string) (map[string]any, error) { return map[string]any{}, nil }

func (Noop) SaveSettings(context.Context, string, map[string]any) error { return nil }

func (Noop) LogSearch(context.Context, SearchLog) error { return nil }

func (Noop) History(context.Context, string, int) ([]SearchLog, error) { return nil, nil }
