package registration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticclub/internal/adapters/storage"
	domain "ticclub/internal/domain/registration"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new registration SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Add inserts a registration. Positions are stored as a JSON array to keep their order.
// PRE: entity has been validated
// POST: Entity is persisted after all earlier rows
func (s *SQLiteStore) Add(ctx context.Context, entity domain.Registration) error {
	positions, err := json.Marshal(entity.Positions)
	if err != nil {
		return fmt.Errorf("encode positions: %w", err)
	}
	query := `INSERT INTO registration (id, name, email, phone, department, motivation, positions, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Email,
		entity.Phone,
		entity.Department,
		entity.Motivation,
		string(positions),
		entity.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// List returns every registration ordered by insertion.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Registration, error) {
	query := "SELECT id, name, email, phone, department, motivation, positions, submitted_at FROM registration ORDER BY seq"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Registration
	for rows.Next() {
		var entity domain.Registration
		var positions, submittedAt string
		if err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&entity.Email,
			&entity.Phone,
			&entity.Department,
			&entity.Motivation,
			&positions,
			&submittedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(positions), &entity.Positions); err != nil {
			return nil, fmt.Errorf("decode positions for %s: %w", entity.ID, err)
		}
		entity.Timestamp, err = time.Parse(time.RFC3339Nano, submittedAt)
		if err != nil {
			return nil, fmt.Errorf("parse submitted_at for %s: %w", entity.ID, err)
		}
		list = append(list, entity)
	}
	return list, rows.Err()
}

// Count returns the number of stored registrations.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM registration").Scan(&n)
	return n, err
}
