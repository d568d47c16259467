package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tracker-svr/internal/domain"
	"tracker-svr/internal/observability"
	"tracker-svr/internal/repository"
)

// Resolver maps wire identifiers to persistent device identities. It keeps
// ingesting telemetry for hardware nobody has registered yet by creating
// placeholder unknown-device rows on first sight.
type Resolver struct {
	identities repository.IdentitiesRepository
	logger     *slog.Logger
	now        func() time.Time
}

func New(identities repository.IdentitiesRepository, logger *slog.Logger) *Resolver {
	return &Resolver{
		identities: identities,
		logger:     logger.With("component", "resolver"),
		now:        time.Now,
	}
}

// Resolve returns the identity owning the identifier. Lookup order:
// registered device, existing unknown device (last_seen advanced), then
// atomic create-on-first-sight. Registered status is re-checked first on
// every call so traffic after linking attributes correctly without a
// reconnect. The only errors are storage errors.
func (r *Resolver) Resolve(ctx context.Context, uniqueID, dialect string) (domain.ResolvedIdentity, error) {
	dev, err := r.identities.FindDeviceByUniqueID(ctx, uniqueID)
	if err == nil {
		return domain.ResolvedIdentity{Device: dev}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.ResolvedIdentity{}, fmt.Errorf("lookup registered device: %w", err)
	}

	seenAt := r.now().UTC()
	unk, err := r.identities.TouchUnknown(ctx, uniqueID, seenAt)
	if err == nil {
		return domain.ResolvedIdentity{Unknown: unk}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.ResolvedIdentity{}, fmt.Errorf("touch unknown device: %w", err)
	}

	created, err := r.identities.CreateUnknown(ctx, &domain.UnknownDevice{
		UniqueID:  uniqueID,
		Dialect:   dialect,
		FirstSeen: seenAt,
		LastSeen:  seenAt,
	})
	if err != nil {
		return domain.ResolvedIdentity{}, fmt.Errorf("create unknown device: %w", err)
	}
	if created {
		observability.UnknownDevicesCreated.Inc()
		r.logger.Info("unknown device first sighting",
			"unique_id", uniqueID, "dialect", dialect)
	}

	// Read our own write, or the concurrent winner's. Either way exactly one
	// row exists now.
	unk, err = r.identities.FindUnknownByUniqueID(ctx, uniqueID)
	if err != nil {
		return domain.ResolvedIdentity{}, fmt.Errorf("read unknown device after create: %w", err)
	}
	return domain.ResolvedIdentity{Unknown: unk}, nil
}

// Link promotes an unknown device's identifier to a registered device. It
// is an explicit operator action, never part of the resolve path, and is
// one-directional: the unknown row stays behind for history.
func (r *Resolver) Link(ctx context.Context, uniqueID, deviceID string) error {
	dev, err := r.identities.GetDeviceByID(ctx, deviceID)
	if err != nil {
		return fmt.Errorf("link target device %s: %w", deviceID, err)
	}
	// Post-link traffic resolves through the registered lookup, which is
	// keyed by unique_id. A mismatched target would silently strand the
	// terminal's frames on the unknown identity forever.
	if dev.UniqueID != uniqueID {
		return fmt.Errorf("device %s carries unique_id %q, cannot link %q",
			deviceID, dev.UniqueID, uniqueID)
	}
	if err := r.identities.LinkUnknown(ctx, uniqueID, deviceID); err != nil {
		return err
	}
	r.logger.Info("unknown device linked", "unique_id", uniqueID, "device_id", deviceID)
	return nil
}
