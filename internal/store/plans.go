package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StoredPlan is a generated weekly plan as persisted.
type StoredPlan struct {
	ID        int64
	UserID    string
	WeekStart time.Time
	PlanData  []byte // raw JSON of the generated plan
	CreatedAt time.Time
}

// PlanRepository persists generated plans per user.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Save inserts a new plan into the database.
func (r *PlanRepository) Save(ctx context.Context, userID string, weekStart time.Time, planData []byte, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (user_id, week_start, plan_data, created_at) VALUES (?, ?, ?, ?)`,
		userID, weekStart, planData, now)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

// LatestByUserID retrieves the most recent plan for a user, or nil when none
// exists.
func (r *PlanRepository) LatestByUserID(ctx context.Context, userID string) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, week_start, plan_data, created_at
		 FROM plans WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, userID)

	var p StoredPlan
	if err := row.Scan(&p.ID, &p.UserID, &p.WeekStart, &p.PlanData, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest plan: %w", err)
	}
	return &p, nil
}
