package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"tracker-svr/internal/domain"
)

type PostgresCommandsRepo struct {
	db *sql.DB
}

func NewPostgresCommandsRepo(db *sql.DB) *PostgresCommandsRepo {
	return &PostgresCommandsRepo{db: db}
}

var _ CommandsRepository = (*PostgresCommandsRepo)(nil)

const commandColumns = `c.command_id::text, c.device_id::text, c.command_type, c.priority,
	c.payload, c.status, c.retry_count, c.max_retries, c.created_at, c.sent_at, c.expires_at`

func scanCommand(s interface{ Scan(...any) error }) (*domain.Command, error) {
	var (
		cmd     domain.Command
		payload []byte
		sentAt  sql.NullTime
	)
	err := s.Scan(&cmd.CommandID, &cmd.DeviceID, &cmd.Type, &cmd.Priority,
		&payload, &cmd.Status, &cmd.RetryCount, &cmd.MaxRetries,
		&cmd.CreatedAt, &sentAt, &cmd.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan command: %w", err)
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &cmd.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal command payload: %w", err)
		}
	}
	if sentAt.Valid {
		t := sentAt.Time
		cmd.SentAt = &t
	}
	return &cmd, nil
}

// Create inserts the command and its queue entry in one transaction; a
// command without a live queue row would never be drained.
func (r *PostgresCommandsRepo) Create(ctx context.Context, cmd *domain.Command) error {
	payload, err := json.Marshal(cmd.Payload)
	if err != nil {
		return fmt.Errorf("marshal command payload: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create command: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO commands
		   (command_id, device_id, command_type, priority, payload, status,
		    retry_count, max_retries, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		cmd.CommandID, cmd.DeviceID, cmd.Type, cmd.Priority, payload, cmd.Status,
		cmd.RetryCount, cmd.MaxRetries, cmd.CreatedAt, cmd.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert command: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO command_queue (command_id, next_attempt_at) VALUES ($1, $2)`,
		cmd.CommandID, cmd.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert queue entry: %w", err)
	}

	return tx.Commit()
}

func (r *PostgresCommandsRepo) Get(ctx context.Context, commandID string) (*domain.Command, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+commandColumns+` FROM commands c WHERE c.command_id = $1`, commandID)
	return scanCommand(row)
}

func (r *PostgresCommandsRepo) List(ctx context.Context, f CommandFilters) ([]*domain.Command, error) {
	where := []string{"TRUE"}
	args := []any{}
	argN := 1

	if f.DeviceID != "" {
		where = append(where, fmt.Sprintf("c.device_id = $%d", argN))
		args = append(args, f.DeviceID)
		argN++
	}
	if f.Status != "" {
		where = append(where, fmt.Sprintf("c.status = $%d", argN))
		args = append(args, string(f.Status))
		argN++
	}
	if f.Priority != nil {
		where = append(where, fmt.Sprintf("c.priority = $%d", argN))
		args = append(args, int(*f.Priority))
		argN++
	}

	query := `SELECT ` + commandColumns + ` FROM commands c WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY c.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	defer rows.Close()
	return collectCommands(rows)
}

func (r *PostgresCommandsRepo) Stats(ctx context.Context) (*domain.CommandStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, priority, COUNT(*) FROM commands GROUP BY status, priority`)
	if err != nil {
		return nil, fmt.Errorf("command stats: %w", err)
	}
	defer rows.Close()

	stats := &domain.CommandStats{
		ByStatus:   map[domain.CommandStatus]int64{},
		ByPriority: map[domain.CommandPriority]int64{},
	}
	for rows.Next() {
		var (
			status   string
			priority int
			count    int64
		)
		if err := rows.Scan(&status, &priority, &count); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats.ByStatus[domain.CommandStatus(status)] += count
		stats.ByPriority[domain.CommandPriority(priority)] += count
	}
	return stats, rows.Err()
}

// DuePending drives drain selection: priority bands first, FIFO inside a
// band. Already-expired commands are left for the expiration sweep.
func (r *PostgresCommandsRepo) DuePending(ctx context.Context, now time.Time) ([]*domain.Command, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commandColumns+`, d.unique_id
		 FROM commands c
		 JOIN command_queue q ON q.command_id = c.command_id
		 JOIN devices d ON d.device_id = c.device_id
		 WHERE c.status = 'PENDING' AND q.next_attempt_at <= $1 AND c.expires_at > $1
		 ORDER BY c.priority DESC, c.created_at ASC`,
		now)
	if err != nil {
		return nil, fmt.Errorf("select due commands: %w", err)
	}
	defer rows.Close()
	return collectDispatchCommands(rows)
}

func (r *PostgresCommandsRepo) TimedOutSent(ctx context.Context, cutoff time.Time) ([]*domain.Command, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commandColumns+`, d.unique_id
		 FROM commands c
		 JOIN devices d ON d.device_id = c.device_id
		 WHERE c.status = 'SENT' AND c.sent_at <= $1`,
		cutoff)
	if err != nil {
		return nil, fmt.Errorf("select timed out commands: %w", err)
	}
	defer rows.Close()
	return collectDispatchCommands(rows)
}

func (r *PostgresCommandsRepo) FindSentByDevice(ctx context.Context, deviceUniqueID string) (*domain.Command, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+commandColumns+`, d.unique_id
		 FROM commands c
		 JOIN devices d ON d.device_id = c.device_id
		 WHERE c.status = 'SENT' AND d.unique_id = $1
		 ORDER BY c.sent_at DESC
		 LIMIT 1`,
		deviceUniqueID)

	var (
		cmd     domain.Command
		payload []byte
		sentAt  sql.NullTime
	)
	err := row.Scan(&cmd.CommandID, &cmd.DeviceID, &cmd.Type, &cmd.Priority,
		&payload, &cmd.Status, &cmd.RetryCount, &cmd.MaxRetries,
		&cmd.CreatedAt, &sentAt, &cmd.ExpiresAt, &cmd.DeviceUniqueID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan in-flight command: %w", err)
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &cmd.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal command payload: %w", err)
		}
	}
	if sentAt.Valid {
		t := sentAt.Time
		cmd.SentAt = &t
	}
	return &cmd, nil
}

func (r *PostgresCommandsRepo) MarkSent(ctx context.Context, commandID string, at time.Time) (bool, error) {
	return r.guarded(ctx,
		`UPDATE commands SET status = 'SENT', sent_at = $2
		 WHERE command_id = $1 AND status = 'PENDING'`,
		commandID, at)
}

// MarkExecuted steps the command through DELIVERED to EXECUTED and drops the
// queue entry in one transaction, so a command can never park at DELIVERED
// with a live queue row. A row already at DELIVERED (an earlier ack that was
// interrupted) still completes: the first update no-ops, the second matches.
func (r *PostgresCommandsRepo) MarkExecuted(ctx context.Context, commandID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin execute: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE commands SET status = 'DELIVERED'
		 WHERE command_id = $1 AND status = 'SENT'`,
		commandID)
	if err != nil {
		return false, fmt.Errorf("mark delivered: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE commands SET status = 'EXECUTED'
		 WHERE command_id = $1 AND status = 'DELIVERED'`,
		commandID)
	if err != nil {
		return false, fmt.Errorf("mark executed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM command_queue WHERE command_id = $1`, commandID)
	if err != nil {
		return false, fmt.Errorf("dequeue executed command: %w", err)
	}
	return true, tx.Commit()
}

// MarkFailed drops the queue entry as well: a FAILED command is no longer
// live for dispatch, even though it can still be cancelled.
func (r *PostgresCommandsRepo) MarkFailed(ctx context.Context, commandID string) (bool, error) {
	return r.transitionAndDequeue(ctx, commandID,
		`UPDATE commands SET status = 'FAILED'
		 WHERE command_id = $1 AND status IN ('PENDING', 'SENT')`)
}

func (r *PostgresCommandsRepo) Requeue(ctx context.Context, commandID string, retryCount int, nextAttempt time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin requeue: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE commands SET status = 'PENDING', retry_count = $2
		 WHERE command_id = $1 AND status = 'SENT'`,
		commandID, retryCount)
	if err != nil {
		return false, fmt.Errorf("requeue command: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE command_queue SET next_attempt_at = $2 WHERE command_id = $1`,
		commandID, nextAttempt)
	if err != nil {
		return false, fmt.Errorf("re-arm queue entry: %w", err)
	}
	return true, tx.Commit()
}

func (r *PostgresCommandsRepo) Cancel(ctx context.Context, commandID string) (bool, error) {
	return r.transitionAndDequeue(ctx, commandID,
		`UPDATE commands SET status = 'CANCELLED'
		 WHERE command_id = $1 AND status IN ('PENDING', 'SENT', 'FAILED')`)
}

// ExpireOverdue is the absolute ceiling: it ignores the retry budget.
func (r *PostgresCommandsRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin expire: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`UPDATE commands SET status = 'EXPIRED'
		 WHERE status IN ('PENDING', 'SENT') AND expires_at <= $1
		 RETURNING command_id::text`,
		now)
	if err != nil {
		return nil, fmt.Errorf("expire commands: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan expired id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM command_queue WHERE command_id = ANY($1)`, pq.Array(ids))
		if err != nil {
			return nil, fmt.Errorf("dequeue expired commands: %w", err)
		}
	}
	return ids, tx.Commit()
}

func (r *PostgresCommandsRepo) guarded(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("command transition: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *PostgresCommandsRepo) transitionAndDequeue(ctx context.Context, commandID, query string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transition: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, commandID)
	if err != nil {
		return false, fmt.Errorf("command transition: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM command_queue WHERE command_id = $1`, commandID)
	if err != nil {
		return false, fmt.Errorf("dequeue command: %w", err)
	}
	return true, tx.Commit()
}

func collectCommands(rows *sql.Rows) ([]*domain.Command, error) {
	var out []*domain.Command
	for rows.Next() {
		cmd, err := scanCommand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, rows.Err()
}

// collectDispatchCommands scans rows that carry the joined device unique_id.
func collectDispatchCommands(rows *sql.Rows) ([]*domain.Command, error) {
	var out []*domain.Command
	for rows.Next() {
		var (
			cmd     domain.Command
			payload []byte
			sentAt  sql.NullTime
		)
		err := rows.Scan(&cmd.CommandID, &cmd.DeviceID, &cmd.Type, &cmd.Priority,
			&payload, &cmd.Status, &cmd.RetryCount, &cmd.MaxRetries,
			&cmd.CreatedAt, &sentAt, &cmd.ExpiresAt, &cmd.DeviceUniqueID)
		if err != nil {
			return nil, fmt.Errorf("scan dispatch command: %w", err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &cmd.Payload); err != nil {
				return nil, fmt.Errorf("unmarshal command payload: %w", err)
			}
		}
		if sentAt.Valid {
			t := sentAt.Time
			cmd.SentAt = &t
		}
		out = append(out, &cmd)
	}
	return out, rows.Err()
}
