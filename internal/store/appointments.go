package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Appointment is a stored fixed-time single event.
type Appointment struct {
	ID        int64
	UserID    string
	Title     string
	StartsAt  time.Time
	CreatedAt time.Time
}

// AppointmentRepository persists appointments per user.
type AppointmentRepository struct {
	db *sql.DB
}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Save inserts an appointment and returns its ID.
func (r *AppointmentRepository) Save(ctx context.Context, userID, title string, startsAt, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO appointments (user_id, title, starts_at, created_at) VALUES (?, ?, ?, ?)`,
		userID, title, startsAt, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert appointment: %w", err)
	}
	return result.LastInsertId()
}

// ListUpcoming returns up to limit appointments starting at or after now,
// soonest first.
func (r *AppointmentRepository) ListUpcoming(ctx context.Context, userID string, now time.Time, limit int) ([]Appointment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, starts_at, created_at
		 FROM appointments
		 WHERE user_id = ? AND starts_at >= ?
		 ORDER BY starts_at LIMIT ?`, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.StartsAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}
