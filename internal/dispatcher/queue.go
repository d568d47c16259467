package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tracker-svr/internal/codec"
	"tracker-svr/internal/domain"
	"tracker-svr/internal/observability"
	"tracker-svr/internal/repository"
)

// Submission boundary errors. Both reject before anything is enqueued.
var (
	ErrUnknownDevice      = errors.New("unknown target device")
	ErrUnknownCommandType = errors.New("unknown command type")
	ErrNotCancellable     = errors.New("command already terminal")
)

// InflightReleaser frees a device's send slot for a command the sweeps will
// never revisit. The dispatcher implements it.
type InflightReleaser interface {
	ReleaseInflight(commandID string)
}

// Queue is the operator-facing command service: it creates, cancels and
// inspects commands. Commands stay owned by the queue until terminal; the
// dispatcher only leases them while a send is in flight.
type Queue struct {
	commands   repository.CommandsRepository
	identities repository.IdentitiesRepository
	inflight   InflightReleaser
	logger     *slog.Logger

	defaultMaxRetries int
	defaultTTL        time.Duration
	now               func() time.Time
}

func NewQueue(
	commands repository.CommandsRepository,
	identities repository.IdentitiesRepository,
	inflight InflightReleaser,
	defaultMaxRetries int,
	defaultTTL time.Duration,
	logger *slog.Logger,
) *Queue {
	return &Queue{
		commands:          commands,
		identities:        identities,
		inflight:          inflight,
		logger:            logger.With("component", "queue"),
		defaultMaxRetries: defaultMaxRetries,
		defaultTTL:        defaultTTL,
		now:               time.Now,
	}
}

// Enqueue validates the target and type, then creates a PENDING command
// scheduled immediately with expires_at = now + ttl.
func (q *Queue) Enqueue(
	ctx context.Context,
	deviceID, cmdType string,
	priority domain.CommandPriority,
	payload map[string]string,
	ttl time.Duration,
) (*domain.Command, error) {
	if !codec.KnownCommandType(cmdType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommandType, cmdType)
	}
	if _, err := q.identities.GetDeviceByID(ctx, deviceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDevice, deviceID)
		}
		return nil, fmt.Errorf("validate target device: %w", err)
	}
	if ttl <= 0 {
		ttl = q.defaultTTL
	}

	now := q.now().UTC()
	cmd := &domain.Command{
		CommandID:  uuid.New().String(),
		DeviceID:   deviceID,
		Type:       cmdType,
		Priority:   priority,
		Payload:    payload,
		Status:     domain.StatusPending,
		MaxRetries: q.defaultMaxRetries,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := q.commands.Create(ctx, cmd); err != nil {
		return nil, fmt.Errorf("enqueue command: %w", err)
	}

	observability.CommandsEnqueued.Inc()
	q.logger.Info("command enqueued",
		"command_id", cmd.CommandID,
		"device_id", deviceID,
		"type", cmdType,
		"priority", priority.String(),
		"expires_at", cmd.ExpiresAt,
	)
	return cmd, nil
}

// Cancel moves any non-terminal command to CANCELLED.
func (q *Queue) Cancel(ctx context.Context, commandID string) (*domain.Command, error) {
	ok, err := q.commands.Cancel(ctx, commandID)
	if err != nil {
		return nil, fmt.Errorf("cancel command: %w", err)
	}
	if !ok {
		// Either the id is unknown or the command is already terminal;
		// re-read to tell the caller which.
		cmd, err := q.commands.Get(ctx, commandID)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s is %s", ErrNotCancellable, commandID, cmd.Status)
	}

	// The command may have been SENT; the device slot it held must not
	// outlive it.
	if q.inflight != nil {
		q.inflight.ReleaseInflight(commandID)
	}

	observability.CommandOutcomes.WithLabelValues(string(domain.StatusCancelled)).Inc()
	q.logger.Info("command cancelled", "command_id", commandID)
	return q.commands.Get(ctx, commandID)
}

func (q *Queue) Get(ctx context.Context, commandID string) (*domain.Command, error) {
	return q.commands.Get(ctx, commandID)
}

func (q *Queue) List(ctx context.Context, f repository.CommandFilters) ([]*domain.Command, error) {
	return q.commands.List(ctx, f)
}

func (q *Queue) Stats(ctx context.Context) (*domain.CommandStats, error) {
	return q.commands.Stats(ctx)
}
