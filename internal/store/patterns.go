// Package store provides SQLite-backed repositories for parsed scheduling
// records and generated plans.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"shedai/internal/parse"
)

// PatternRepository persists lifestyle patterns per user.
type PatternRepository struct {
	db *sql.DB
}

// NewPatternRepository creates a new PatternRepository.
func NewPatternRepository(db *sql.DB) *PatternRepository {
	return &PatternRepository{db: db}
}

// Save inserts one lifestyle record for a user.
func (r *PatternRepository) Save(ctx context.Context, userID string, rec parse.LifestyleRecord, now time.Time) error {
	days, err := json.Marshal(rec.Days)
	if err != nil {
		return fmt.Errorf("failed to marshal days: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO lifestyle_patterns (user_id, days, start_time, end_time, title, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, string(days), rec.Start, rec.End, rec.Title, now)
	if err != nil {
		return fmt.Errorf("failed to insert lifestyle pattern: %w", err)
	}
	return nil
}

// ReplaceAll swaps a user's stored patterns for a freshly parsed block.
func (r *PatternRepository) ReplaceAll(ctx context.Context, userID string, records []parse.LifestyleRecord, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM lifestyle_patterns WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear lifestyle patterns: %w", err)
	}
	for _, rec := range records {
		days, err := json.Marshal(rec.Days)
		if err != nil {
			return fmt.Errorf("failed to marshal days: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lifestyle_patterns (user_id, days, start_time, end_time, title, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			userID, string(days), rec.Start, rec.End, rec.Title, now); err != nil {
			return fmt.Errorf("failed to insert lifestyle pattern: %w", err)
		}
	}
	return tx.Commit()
}

// ListByUserID returns a user's lifestyle patterns in insertion order.
func (r *PatternRepository) ListByUserID(ctx context.Context, userID string) ([]parse.LifestyleRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT days, start_time, end_time, title
		 FROM lifestyle_patterns WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lifestyle patterns: %w", err)
	}
	defer rows.Close()

	var records []parse.LifestyleRecord
	for rows.Next() {
		var rec parse.LifestyleRecord
		var days string
		if err := rows.Scan(&days, &rec.Start, &rec.End, &rec.Title); err != nil {
			return nil, fmt.Errorf("failed to scan lifestyle pattern: %w", err)
		}
		if err := json.Unmarshal([]byte(days), &rec.Days); err != nil {
			return nil, fmt.Errorf("failed to unmarshal days: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
