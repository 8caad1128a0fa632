package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulik0/woking-time-record/internal/models"
)

func newRecordStoreMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestPostgresRecordRepositoryList(t *testing.T) {
	db, mock, cleanup := newRecordStoreMock(t)
	defer cleanup()

	stored := []models.TimeRecord{
		{ID: "r1", Date: "2024-03-15", StartTime: "09:00", EndTime: "19:00", DayType: models.DayTypeWorkday, WorkedMinutes: 540, OvertimeMinutes: 60},
	}
	payload, err := json.Marshal(stored)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT payload FROM record_store").
		WithArgs("worktime:records").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	repo := NewPostgresRecordRepository(db, "worktime:records")
	records, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ID)
	assert.Equal(t, 60, records[0].OvertimeMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordRepositoryListEmpty(t *testing.T) {
	db, mock, cleanup := newRecordStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT payload FROM record_store").
		WithArgs("worktime:records").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRecordRepository(db, "worktime:records")
	records, err := repo.List(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestPostgresRecordRepositoryListCorruptPayload(t *testing.T) {
	db, mock, cleanup := newRecordStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT payload FROM record_store").
		WithArgs("worktime:records").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte("{broken")))

	repo := NewPostgresRecordRepository(db, "worktime:records")
	_, err := repo.List(context.Background())
	assert.Error(t, err)
}

func TestPostgresRecordRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newRecordStoreMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO record_store").
		WithArgs("worktime:records", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRecordRepository(db, "worktime:records")
	err := repo.ReplaceAll(context.Background(), []models.TimeRecord{
		{ID: "r1", Date: "2024-03-15", StartTime: "09:00", EndTime: "19:00"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
