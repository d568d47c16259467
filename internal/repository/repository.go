package repository

import (
	"context"
	"errors"
	"time"

	"tracker-svr/internal/domain"
)

// ErrNotFound is returned by lookups when no row matches. Callers decide
// whether that is an error or a branch (the resolver treats it as a branch).
var ErrNotFound = errors.New("not found")

// IdentitiesRepository covers both kinds of device identity. The
// unique-constraint-backed CreateUnknown is the only contended write path in
// the system; everything else is plain reads and single-row updates.
type IdentitiesRepository interface {
	GetDeviceByID(ctx context.Context, deviceID string) (*domain.RegisteredDevice, error)
	FindDeviceByUniqueID(ctx context.Context, uniqueID string) (*domain.RegisteredDevice, error)

	FindUnknownByUniqueID(ctx context.Context, uniqueID string) (*domain.UnknownDevice, error)
	// TouchUnknown advances last_seen and returns the row, ErrNotFound when
	// the identifier has never been seen.
	TouchUnknown(ctx context.Context, uniqueID string, seenAt time.Time) (*domain.UnknownDevice, error)
	// CreateUnknown inserts with ON CONFLICT DO NOTHING semantics and
	// reports whether this call created the row. Losing a concurrent race is
	// not an error; the caller re-reads the winner's row.
	CreateUnknown(ctx context.Context, u *domain.UnknownDevice) (bool, error)

	// LinkUnknown records the one-directional unknown -> registered
	// promotion. The unknown row is kept for history.
	LinkUnknown(ctx context.Context, uniqueID, deviceID string) error
}

// PositionsRepository is append-only by contract: no update or delete
// methods exist on purpose.
type PositionsRepository interface {
	Insert(ctx context.Context, p *domain.Position) error
}

// CommandFilters narrows introspection queries. Zero values mean "no filter".
type CommandFilters struct {
	DeviceID string
	Status   domain.CommandStatus
	Priority *domain.CommandPriority
}

// CommandsRepository owns the command lifecycle rows and their queue
// entries. All transitions are guarded UPDATEs (WHERE status IN ...) so a
// terminal state can never be re-entered regardless of caller interleaving;
// the bool results report whether the transition actually happened.
type CommandsRepository interface {
	Create(ctx context.Context, cmd *domain.Command) error
	Get(ctx context.Context, commandID string) (*domain.Command, error)
	List(ctx context.Context, f CommandFilters) ([]*domain.Command, error)
	Stats(ctx context.Context) (*domain.CommandStats, error)

	// DuePending returns PENDING commands whose queue entry is due, joined
	// with the target device's unique id, ordered priority DESC then
	// created_at ASC.
	DuePending(ctx context.Context, now time.Time) ([]*domain.Command, error)
	// TimedOutSent returns SENT commands whose sent_at is at or before the
	// cutoff.
	TimedOutSent(ctx context.Context, cutoff time.Time) ([]*domain.Command, error)
	// FindSentByDevice returns the in-flight command for a device, for
	// acknowledgement correlation. At most one exists by construction.
	FindSentByDevice(ctx context.Context, deviceUniqueID string) (*domain.Command, error)

	MarkSent(ctx context.Context, commandID string, at time.Time) (bool, error)
	// MarkExecuted resolves a positive acknowledgement: the command steps
	// through DELIVERED to EXECUTED and loses its queue entry, all in one
	// transaction.
	MarkExecuted(ctx context.Context, commandID string) (bool, error)
	MarkFailed(ctx context.Context, commandID string) (bool, error)
	// Requeue redrives a SENT command back to PENDING with the new retry
	// count and next-attempt time.
	Requeue(ctx context.Context, commandID string, retryCount int, nextAttempt time.Time) (bool, error)
	Cancel(ctx context.Context, commandID string) (bool, error)
	// ExpireOverdue expires every PENDING or SENT command past its
	// expires_at and returns the affected ids.
	ExpireOverdue(ctx context.Context, now time.Time) ([]string, error)
}
