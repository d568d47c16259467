package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"tracker-svr/internal/domain"
)

type PostgresPositionsRepo struct {
	db *sql.DB
}

func NewPostgresPositionsRepo(db *sql.DB) *PostgresPositionsRepo {
	return &PostgresPositionsRepo{db: db}
}

var _ PositionsRepository = (*PostgresPositionsRepo)(nil)

// Insert appends one position row. Exactly one of device_id /
// unknown_device_id is non-NULL, whichever identity resolved the frame.
func (r *PostgresPositionsRepo) Insert(ctx context.Context, p *domain.Position) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("marshal position attributes: %w", err)
	}

	deviceID := nullableID(p.DeviceID)
	unknownID := nullableID(p.UnknownDeviceID)

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO positions
		   (device_id, unknown_device_id, raw_unique_id, dialect, recorded_at,
		    latitude, longitude, speed, course, attributes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING position_id`,
		deviceID, unknownID, p.RawUniqueID, p.Dialect, p.RecordedAt,
		p.Latitude, p.Longitude, p.Speed, p.Course, attrs,
	).Scan(&p.PositionID)
	if err != nil {
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}
