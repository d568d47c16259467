package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tracker-svr/internal/codec"
	"tracker-svr/internal/config"
	"tracker-svr/internal/domain"
	"tracker-svr/internal/observability"
	"tracker-svr/internal/repository"
	"tracker-svr/internal/store"
)

// Sender pushes raw command frames down an established device connection.
// The TCP server implements it over its connection registry.
type Sender interface {
	Send(uniqueID string, frame []byte) error
	Connected(uniqueID string) bool
}

// Dispatcher drives queued commands toward a terminal status. Three duties
// run on independent tickers and coordinate only through storage: draining
// due PENDING commands, redriving timed-out SENT commands, and expiring
// overdue ones. Expiration overrides any remaining retry budget.
type Dispatcher struct {
	commands repository.CommandsRepository
	sender   Sender
	store    *store.Store
	logger   *slog.Logger
	cfg      config.DispatcherConfig

	inflight *inflightTable
	now      func() time.Time
}

func New(
	commands repository.CommandsRepository,
	sender Sender,
	st *store.Store,
	cfg config.DispatcherConfig,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		commands: commands,
		sender:   sender,
		store:    st,
		logger:   logger.With("component", "dispatcher"),
		cfg:      cfg,
		inflight: newInflightTable(),
		now:      time.Now,
	}
}

// ReleaseInflight frees whichever device slot holds the command. The queue
// calls it when an operator cancels a command that is already on the wire;
// no sweep would ever see that command again.
func (d *Dispatcher) ReleaseInflight(commandID string) {
	d.inflight.ReleaseCommand(commandID)
}

// Run starts the three sweep loops and returns immediately. The loops stop
// when ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	go d.loop(ctx, d.cfg.DrainInterval, "drain", d.DrainOnce)
	go d.loop(ctx, d.cfg.TimeoutInterval, "timeout_sweep", d.TimeoutSweepOnce)
	go d.loop(ctx, d.cfg.ExpireInterval, "expire_sweep", d.ExpireSweepOnce)
}

func (d *Dispatcher) loop(ctx context.Context, interval time.Duration, name string, fn func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger.Info("sweep loop started", "sweep", name, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("sweep loop stopped", "sweep", name)
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				d.logger.Error("sweep failed", "sweep", name, "err", err)
			}
		}
	}
}

// DrainOnce sends every due PENDING command whose device is connected and
// idle, in priority order. Commands for offline or busy devices stay queued
// untouched for the next pass.
func (d *Dispatcher) DrainOnce(ctx context.Context) error {
	now := d.now().UTC()
	due, err := d.commands.DuePending(ctx, now)
	if err != nil {
		return fmt.Errorf("load due commands: %w", err)
	}

	for _, cmd := range due {
		uid := cmd.DeviceUniqueID
		if uid == "" || !d.sender.Connected(uid) {
			continue
		}
		if !d.inflight.TryAcquire(uid, cmd.CommandID) {
			continue
		}
		d.sendCommand(ctx, cmd, uid)
	}
	return nil
}

func (d *Dispatcher) sendCommand(ctx context.Context, cmd *domain.Command, uid string) {
	frame, err := codec.BuildCommand(uid, cmd)
	if err != nil {
		// Unencodable payloads can never succeed; fail without spending retries.
		d.inflight.Release(uid)
		if _, ferr := d.commands.MarkFailed(ctx, cmd.CommandID); ferr != nil {
			d.logger.Error("mark unencodable command failed", "command_id", cmd.CommandID, "err", ferr)
			return
		}
		observability.CommandOutcomes.WithLabelValues(string(domain.StatusFailed)).Inc()
		d.logger.Warn("command not encodable", "command_id", cmd.CommandID, "type", cmd.Type, "err", err)
		return
	}

	ok, err := d.commands.MarkSent(ctx, cmd.CommandID, d.now().UTC())
	if err != nil || !ok {
		// Lost the claim (cancelled or expired underneath us); leave it be.
		d.inflight.Release(uid)
		if err != nil {
			d.logger.Error("mark sent failed", "command_id", cmd.CommandID, "err", err)
		}
		return
	}

	if err := d.sender.Send(uid, frame); err != nil {
		// Transient wire failure. Spend one retry and put it back.
		d.inflight.Release(uid)
		d.retryOrFail(ctx, cmd.CommandID, cmd.RetryCount, cmd.MaxRetries, "send failed")
		d.logger.Warn("command send failed", "command_id", cmd.CommandID, "unique_id", uid, "err", err)
		return
	}

	observability.CommandsSent.Inc()
	if d.store != nil {
		if _, err := d.store.IncrDailyCommandCount(ctx, uid, d.now()); err != nil {
			d.logger.Warn("daily command counter", "unique_id", uid, "err", err)
		}
	}
	d.logger.Info("command sent",
		"command_id", cmd.CommandID,
		"unique_id", uid,
		"type", cmd.Type,
		"priority", cmd.Priority.String(),
		"retry_count", cmd.RetryCount,
	)
}

// TimeoutSweepOnce redrives SENT commands whose acknowledgement window has
// closed: back to PENDING while retry budget remains, FAILED once spent.
func (d *Dispatcher) TimeoutSweepOnce(ctx context.Context) error {
	cutoff := d.now().UTC().Add(-d.cfg.AckTimeout)
	stale, err := d.commands.TimedOutSent(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("load timed-out commands: %w", err)
	}

	for _, cmd := range stale {
		d.inflight.ReleaseCommand(cmd.CommandID)
		d.retryOrFail(ctx, cmd.CommandID, cmd.RetryCount, cmd.MaxRetries, "ack timeout")
	}
	return nil
}

func (d *Dispatcher) retryOrFail(ctx context.Context, commandID string, retryCount, maxRetries int, reason string) {
	attempt := retryCount + 1
	if attempt <= maxRetries {
		nextAttempt := d.now().UTC().Add(d.cfg.RetryBackoff)
		ok, err := d.commands.Requeue(ctx, commandID, attempt, nextAttempt)
		if err != nil {
			d.logger.Error("requeue failed", "command_id", commandID, "err", err)
			return
		}
		if ok {
			d.logger.Info("command requeued",
				"command_id", commandID,
				"retry_count", attempt,
				"reason", reason,
				"next_attempt_at", nextAttempt,
			)
		}
		return
	}

	ok, err := d.commands.MarkFailed(ctx, commandID)
	if err != nil {
		d.logger.Error("mark failed", "command_id", commandID, "err", err)
		return
	}
	if ok {
		observability.CommandOutcomes.WithLabelValues(string(domain.StatusFailed)).Inc()
		d.logger.Warn("command failed, retry budget exhausted",
			"command_id", commandID,
			"retries", retryCount,
			"reason", reason,
		)
	}
}

// ExpireSweepOnce terminates every overdue PENDING or SENT command,
// regardless of remaining retries.
func (d *Dispatcher) ExpireSweepOnce(ctx context.Context) error {
	ids, err := d.commands.ExpireOverdue(ctx, d.now().UTC())
	if err != nil {
		return fmt.Errorf("expire overdue commands: %w", err)
	}

	for _, id := range ids {
		d.inflight.ReleaseCommand(id)
		observability.CommandOutcomes.WithLabelValues(string(domain.StatusExpired)).Inc()
		d.logger.Info("command expired", "command_id", id)
	}
	return nil
}

// HandleAck resolves a device acknowledgement against that device's single
// in-flight command. A positive ack runs the command through DELIVERED to
// EXECUTED; a negative one spends a retry.
func (d *Dispatcher) HandleAck(ctx context.Context, ack *codec.Ack) {
	cmd, err := d.commands.FindSentByDevice(ctx, ack.UniqueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No SENT row means nothing can be in flight for this device;
			// drop any stale slot so later commands are not blocked.
			d.inflight.Release(ack.UniqueID)
			d.logger.Warn("ack with no in-flight command", "unique_id", ack.UniqueID, "keyword", ack.Keyword)
			return
		}
		d.logger.Error("resolve ack", "unique_id", ack.UniqueID, "err", err)
		return
	}

	d.inflight.Release(ack.UniqueID)

	if !ack.OK {
		d.retryOrFail(ctx, cmd.CommandID, cmd.RetryCount, cmd.MaxRetries, "device rejected command")
		return
	}

	ok, err := d.commands.MarkExecuted(ctx, cmd.CommandID)
	if err != nil {
		d.logger.Error("mark executed", "command_id", cmd.CommandID, "err", err)
		return
	}
	if !ok {
		// Lost a race with a sweep or a cancel; their transition stands.
		return
	}

	observability.CommandOutcomes.WithLabelValues(string(domain.StatusExecuted)).Inc()
	d.logger.Info("command executed",
		"command_id", cmd.CommandID,
		"unique_id", ack.UniqueID,
		"keyword", ack.Keyword,
		"detail", ack.Detail,
	)
}
