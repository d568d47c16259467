package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-svr/internal/domain"
)

func setupCommandsRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresCommandsRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresCommandsRepo(db)
}

func TestCreateCommandInsertsQueueEntry(t *testing.T) {
	db, mock, repo := setupCommandsRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	cmd := &domain.Command{
		CommandID:  uuid.New().String(),
		DeviceID:   uuid.New().String(),
		Type:       "rebootDevice",
		Priority:   domain.PriorityHigh,
		Status:     domain.StatusPending,
		MaxRetries: 3,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Hour),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO commands`).
		WithArgs(cmd.CommandID, cmd.DeviceID, "rebootDevice", domain.PriorityHigh,
			sqlmock.AnyArg(), domain.StatusPending, 0, 3, now, now.Add(time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO command_queue`).
		WithArgs(cmd.CommandID, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), cmd))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSentOnlyFromPending(t *testing.T) {
	db, mock, repo := setupCommandsRepo(t)
	defer db.Close()

	id := uuid.New().String()
	at := time.Now().UTC()

	mock.ExpectExec(`UPDATE commands SET status = 'SENT'`).
		WithArgs(id, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.MarkSent(context.Background(), id, at)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second attempt finds the command no longer PENDING.
	mock.ExpectExec(`UPDATE commands SET status = 'SENT'`).
		WithArgs(id, at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.MarkSent(context.Background(), id, at)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkExecutedCommitsBothStepsWithDequeue(t *testing.T) {
	db, mock, repo := setupCommandsRepo(t)
	defer db.Close()

	id := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE commands SET status = 'DELIVERED'`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE commands SET status = 'EXECUTED'`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM command_queue`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.MarkExecuted(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkExecutedRecoversDeliveredCommand(t *testing.T) {
	db, mock, repo := setupCommandsRepo(t)
	defer db.Close()

	id := uuid.New().String()

	// Row already at DELIVERED: the first step matches nothing, the second
	// still completes the transition.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE commands SET status = 'DELIVERED'`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE commands SET status = 'EXECUTED'`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM command_queue`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.MarkExecuted(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailedDropsQueueEntry(t *testing.T) {
	db, mock, repo := setupCommandsRepo(t)
	defer db.Close()

	id := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE commands SET status = 'FAILED'`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM command_queue`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.MarkFailed(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequeueReArmsEntry(t *testing.T) {
	db, mock, repo := setupCommandsRepo(t)
	defer db.Close()

	id := uuid.New().String()
	next := time.Now().UTC().Add(10 * time.Second)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE commands SET status = 'PENDING'`).
		WithArgs(id, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE command_queue SET next_attempt_at`).
		WithArgs(id, next).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.Requeue(context.Background(), id, 1, next)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireOverdue(t *testing.T) {
	db, mock, repo := setupCommandsRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	id1 := uuid.New().String()
	id2 := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE commands SET status = 'EXPIRED'`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"command_id"}).AddRow(id1).AddRow(id2))
	mock.ExpectExec(`DELETE FROM command_queue`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	ids, err := repo.ExpireOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{id1, id2}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsAggregatesBothAxes(t *testing.T) {
	db, mock, repo := setupCommandsRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"status", "priority", "count"}).
		AddRow("PENDING", 1, 4).
		AddRow("PENDING", 3, 1).
		AddRow("EXECUTED", 1, 7)
	mock.ExpectQuery(`SELECT status, priority, COUNT`).WillReturnRows(rows)

	stats, err := repo.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.ByStatus[domain.StatusPending])
	assert.Equal(t, int64(7), stats.ByStatus[domain.StatusExecuted])
	assert.Equal(t, int64(11), stats.ByPriority[domain.PriorityNormal])
	assert.Equal(t, int64(1), stats.ByPriority[domain.PriorityCritical])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDuePendingCarriesDeviceUniqueID(t *testing.T) {
	db, mock, repo := setupCommandsRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	id := uuid.New().String()
	deviceID := uuid.New().String()
	rows := sqlmock.NewRows([]string{
		"command_id", "device_id", "command_type", "priority", "payload", "status",
		"retry_count", "max_retries", "created_at", "sent_at", "expires_at", "unique_id",
	}).AddRow(id, deviceID, "positionSingle", 2, []byte(`{"k":"v"}`), "PENDING",
		0, 3, now, nil, now.Add(time.Hour), "47733387")

	mock.ExpectQuery(`SELECT`).WithArgs(now).WillReturnRows(rows)

	due, err := repo.DuePending(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "47733387", due[0].DeviceUniqueID)
	assert.Equal(t, domain.PriorityHigh, due[0].Priority)
	assert.Equal(t, "v", due[0].Payload["k"])
	assert.Nil(t, due[0].SentAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
