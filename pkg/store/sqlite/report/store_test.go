package report

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/askcarbuddy/carscout/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reports`)).
		WithArgs("abc123def456", "paid", []byte(`{"buy_score":{}}`), createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Save(context.Background(), store.Report{
		ID:        "abc123def456",
		Tier:      "paid",
		Payload:   []byte(`{"buy_score":{}}`),
		CreatedAt: createdAt,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "tier", "payload", "created_at"}).
		AddRow("abc123def456", "free", []byte(`{}`), createdAt)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, tier, payload, created_at FROM reports WHERE id = ?`)).
		WithArgs("abc123def456").
		WillReturnRows(rows)

	s, err := NewStore(db)
	require.NoError(t, err)

	got, err := s.Get(context.Background(), "abc123def456")

	require.NoError(t, err)
	assert.Equal(t, "abc123def456", got.ID)
	assert.Equal(t, "free", got.Tier)
	assert.Equal(t, []byte(`{}`), got.Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, tier, payload, created_at FROM reports WHERE id = ?`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tier", "payload", "created_at"}))

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_PurgeOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM reports WHERE created_at < ?`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	s, err := NewStore(db)
	require.NoError(t, err)

	purged, err := s.PurgeOlderThan(context.Background(), cutoff)

	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
