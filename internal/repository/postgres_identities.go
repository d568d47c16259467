package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tracker-svr/internal/domain"
)

type PostgresIdentitiesRepo struct {
	db *sql.DB
}

func NewPostgresIdentitiesRepo(db *sql.DB) *PostgresIdentitiesRepo {
	return &PostgresIdentitiesRepo{db: db}
}

var _ IdentitiesRepository = (*PostgresIdentitiesRepo)(nil)

const deviceColumns = `device_id::text, unique_id, name, owner, model, created_at`

func scanDevice(row *sql.Row) (*domain.RegisteredDevice, error) {
	var d domain.RegisteredDevice
	err := row.Scan(&d.DeviceID, &d.UniqueID, &d.Name, &d.Owner, &d.Model, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan device: %w", err)
	}
	return &d, nil
}

func (r *PostgresIdentitiesRepo) GetDeviceByID(ctx context.Context, deviceID string) (*domain.RegisteredDevice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE device_id = $1`, deviceID)
	return scanDevice(row)
}

func (r *PostgresIdentitiesRepo) FindDeviceByUniqueID(ctx context.Context, uniqueID string) (*domain.RegisteredDevice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE unique_id = $1`, uniqueID)
	return scanDevice(row)
}

const unknownColumns = `unknown_device_id::text, unique_id, dialect, first_seen, last_seen, linked_device_id::text`

func scanUnknown(row *sql.Row) (*domain.UnknownDevice, error) {
	var u domain.UnknownDevice
	err := row.Scan(&u.UnknownDeviceID, &u.UniqueID, &u.Dialect, &u.FirstSeen, &u.LastSeen, &u.LinkedDeviceID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan unknown device: %w", err)
	}
	return &u, nil
}

func (r *PostgresIdentitiesRepo) FindUnknownByUniqueID(ctx context.Context, uniqueID string) (*domain.UnknownDevice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+unknownColumns+` FROM unknown_devices WHERE unique_id = $1`, uniqueID)
	return scanUnknown(row)
}

func (r *PostgresIdentitiesRepo) TouchUnknown(ctx context.Context, uniqueID string, seenAt time.Time) (*domain.UnknownDevice, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE unknown_devices SET last_seen = $2
		 WHERE unique_id = $1
		 RETURNING `+unknownColumns,
		uniqueID, seenAt)
	return scanUnknown(row)
}

// CreateUnknown relies on the unique_id constraint for atomicity under
// concurrent first sightings. Exactly one caller creates the row; the rest
// see created=false and re-read.
func (r *PostgresIdentitiesRepo) CreateUnknown(ctx context.Context, u *domain.UnknownDevice) (bool, error) {
	if u.UnknownDeviceID == "" {
		u.UnknownDeviceID = uuid.New().String()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO unknown_devices (unknown_device_id, unique_id, dialect, first_seen, last_seen)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (unique_id) DO NOTHING`,
		u.UnknownDeviceID, u.UniqueID, u.Dialect, u.FirstSeen, u.LastSeen)
	if err != nil {
		return false, fmt.Errorf("insert unknown device: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *PostgresIdentitiesRepo) LinkUnknown(ctx context.Context, uniqueID, deviceID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE unknown_devices SET linked_device_id = $2
		 WHERE unique_id = $1 AND linked_device_id IS NULL`,
		uniqueID, deviceID)
	if err != nil {
		return fmt.Errorf("link unknown device: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("link %s: %w or already linked", uniqueID, ErrNotFound)
	}
	return nil
}
