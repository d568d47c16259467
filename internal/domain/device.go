package domain

import (
	"database/sql"
	"time"
)

// RegisteredDevice is a device row owned by the platform (devices table).
type RegisteredDevice struct {
	DeviceID  string         `db:"device_id"`
	UniqueID  string         `db:"unique_id"`
	Name      string         `db:"name"`
	Owner     sql.NullString `db:"owner"`
	Model     sql.NullString `db:"model"`
	CreatedAt time.Time      `db:"created_at"`
}

// UnknownDevice is a terminal seen on the wire but not linked to any
// registered device yet (unknown_devices table). The row survives linking;
// LinkedDeviceID records where its traffic went afterwards.
type UnknownDevice struct {
	UnknownDeviceID string         `db:"unknown_device_id"`
	UniqueID        string         `db:"unique_id"`
	Dialect         string         `db:"dialect"`
	FirstSeen       time.Time      `db:"first_seen"`
	LastSeen        time.Time      `db:"last_seen"`
	LinkedDeviceID  sql.NullString `db:"linked_device_id"`
}

// ResolvedIdentity is the outcome of one resolver call. Exactly one of the
// two fields is set. The same value is threaded through ingestion; it is
// never re-derived mid-pipeline.
type ResolvedIdentity struct {
	Device  *RegisteredDevice
	Unknown *UnknownDevice
}

// Registered reports whether the identity is a registered device.
func (r ResolvedIdentity) Registered() bool {
	return r.Device != nil
}

// UniqueID returns the wire identifier of whichever identity is set.
func (r ResolvedIdentity) UniqueID() string {
	if r.Device != nil {
		return r.Device.UniqueID
	}
	if r.Unknown != nil {
		return r.Unknown.UniqueID
	}
	return ""
}
