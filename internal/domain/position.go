package domain

import "time"

// Position is a persisted telemetry record (positions table). Append-only:
// rows are never updated or re-pointed after insert, even when the unknown
// device that produced them is later linked.
type Position struct {
	PositionID int64 `db:"position_id"`

	// Exactly one of the two identity references is set, whichever resolved
	// the frame at ingestion time.
	DeviceID        string `db:"device_id"`
	UnknownDeviceID string `db:"unknown_device_id"`

	// RawUniqueID keeps the identifier as it appeared on the wire, for audit
	// after linking.
	RawUniqueID string `db:"raw_unique_id"`
	Dialect     string `db:"dialect"`

	RecordedAt time.Time `db:"recorded_at"`
	Latitude   float64   `db:"latitude"`
	Longitude  float64   `db:"longitude"`
	Speed      float64   `db:"speed"`
	Course     float64   `db:"course"`

	Attributes map[string]any `db:"attributes"`
}
