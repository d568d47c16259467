package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tracker-svr/internal/codec"
	"tracker-svr/internal/domain"
	"tracker-svr/internal/link"
	"tracker-svr/internal/observability"
	"tracker-svr/internal/repository"
	"tracker-svr/internal/store"
)

// ErrOutOfRangeCoordinate rejects coordinates outside the valid ranges.
// Rejected, never clamped: a clamped position would be a fabricated fix.
var ErrOutOfRangeCoordinate = errors.New("coordinate out of range")

// Pipeline validates decoded telemetry and appends it to storage. It runs
// once per frame on the connection's goroutine and persists regardless of
// registration state: registration gates attribution, never recording.
type Pipeline struct {
	positions repository.PositionsRepository
	store     *store.Store
	uplink    *link.Uplink
	logger    *slog.Logger
}

func New(positions repository.PositionsRepository, st *store.Store, up *link.Uplink, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		positions: positions,
		store:     st,
		uplink:    up,
		logger:    logger.With("component", "pipeline"),
	}
}

// Ingest persists one telemetry record attributed to the identity that
// resolved it. The identity is taken as a value and threaded through;
// it is never re-looked-up here.
func (p *Pipeline) Ingest(ctx context.Context, rec *codec.TelemetryRecord, identity domain.ResolvedIdentity) (*domain.Position, error) {
	if rec.Latitude < -90 || rec.Latitude > 90 {
		observability.IngestRejects.Inc()
		return nil, fmt.Errorf("%w: latitude %f", ErrOutOfRangeCoordinate, rec.Latitude)
	}
	if rec.Longitude < -180 || rec.Longitude > 180 {
		observability.IngestRejects.Inc()
		return nil, fmt.Errorf("%w: longitude %f", ErrOutOfRangeCoordinate, rec.Longitude)
	}

	pos := &domain.Position{
		RawUniqueID: rec.UniqueID,
		Dialect:     rec.Dialect,
		RecordedAt:  rec.Timestamp,
		Latitude:    rec.Latitude,
		Longitude:   rec.Longitude,
		Speed:       rec.Speed,
		Course:      rec.Course,
		Attributes:  rec.Attributes,
	}
	if identity.Registered() {
		pos.DeviceID = identity.Device.DeviceID
	} else if identity.Unknown != nil {
		pos.UnknownDeviceID = identity.Unknown.UnknownDeviceID
	} else {
		return nil, fmt.Errorf("telemetry for %s carries no resolved identity", rec.UniqueID)
	}

	if err := p.positions.Insert(ctx, pos); err != nil {
		return nil, fmt.Errorf("persist position: %w", err)
	}
	observability.PositionsPersisted.Inc()

	// Hot-state mirror and platform feed are best-effort; the durable write
	// above is the contract.
	if p.store != nil {
		p.store.SaveLastPositionSafe(ctx, rec.UniqueID, pos)
	}
	if p.uplink != nil {
		p.uplink.SendPosition(rec.UniqueID, identity.Registered(), pos)
	}

	p.logger.Debug("position persisted",
		"unique_id", rec.UniqueID,
		"registered", identity.Registered(),
		"lat", pos.Latitude,
		"lon", pos.Longitude,
	)
	return pos, nil
}
