package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/askcarbuddy/carscout/pkg/models/store"
)

// Store caches generated reports by id. Reports are a regenerable
// cache, not a system of record; PurgeOlderThan enforces retention.
type Store interface {
	Save(ctx context.Context, report store.Report) error
	Get(ctx context.Context, id string) (*store.Report, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

func (s *reportStore) Save(ctx context.Context, report store.Report) error {
	query := `
		INSERT INTO reports (id, tier, payload, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tier = excluded.tier,
			payload = excluded.payload,
			created_at = excluded.created_at`

	_, err := s.db.ExecContext(ctx, query,
		report.ID, report.Tier, report.Payload, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("save report %s: %w", report.ID, err)
	}
	return nil
}

func (s *reportStore) Get(ctx context.Context, id string) (*store.Report, error) {
	query := `SELECT id, tier, payload, created_at FROM reports WHERE id = ?`

	var report store.Report
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&report.ID, &report.Tier, &report.Payload, &report.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: report %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return &report, nil
}

func (s *reportStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge reports: %w", err)
	}
	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge reports: %w", err)
	}
	return purged, nil
}
