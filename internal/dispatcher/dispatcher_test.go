package dispatcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-svr/internal/codec"
	"tracker-svr/internal/config"
	"tracker-svr/internal/domain"
	"tracker-svr/internal/repository"
)

// memCommands is an in-memory CommandsRepository with the same status guards
// as the Postgres implementation.
type memCommands struct {
	mu       sync.Mutex
	commands map[string]*domain.Command
	queue    map[string]time.Time // command id -> next_attempt_at
	uniqueID map[string]string    // device id -> device unique_id
}

func newMemCommands() *memCommands {
	return &memCommands{
		commands: make(map[string]*domain.Command),
		queue:    make(map[string]time.Time),
		uniqueID: make(map[string]string),
	}
}

func (m *memCommands) Create(_ context.Context, cmd *domain.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *cmd
	m.commands[c.CommandID] = &c
	m.queue[c.CommandID] = c.CreatedAt
	return nil
}

func (m *memCommands) Get(_ context.Context, id string) (*domain.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd, ok := m.commands[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *cmd
	return &c, nil
}

func (m *memCommands) List(_ context.Context, f repository.CommandFilters) ([]*domain.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Command
	for _, cmd := range m.commands {
		if f.DeviceID != "" && cmd.DeviceID != f.DeviceID {
			continue
		}
		if f.Status != "" && cmd.Status != f.Status {
			continue
		}
		if f.Priority != nil && cmd.Priority != *f.Priority {
			continue
		}
		c := *cmd
		out = append(out, &c)
	}
	return out, nil
}

func (m *memCommands) Stats(_ context.Context) (*domain.CommandStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &domain.CommandStats{
		ByStatus:   make(map[domain.CommandStatus]int64),
		ByPriority: make(map[domain.CommandPriority]int64),
	}
	for _, cmd := range m.commands {
		stats.ByStatus[cmd.Status]++
		stats.ByPriority[cmd.Priority]++
	}
	return stats, nil
}

func (m *memCommands) DuePending(_ context.Context, now time.Time) ([]*domain.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Command
	for id, next := range m.queue {
		cmd := m.commands[id]
		if cmd.Status != domain.StatusPending || next.After(now) || !cmd.ExpiresAt.After(now) {
			continue
		}
		c := *cmd
		c.DeviceUniqueID = m.uniqueID[cmd.DeviceID]
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memCommands) TimedOutSent(_ context.Context, cutoff time.Time) ([]*domain.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Command
	for _, cmd := range m.commands {
		if cmd.Status != domain.StatusSent || cmd.SentAt == nil || cmd.SentAt.After(cutoff) {
			continue
		}
		c := *cmd
		c.DeviceUniqueID = m.uniqueID[cmd.DeviceID]
		out = append(out, &c)
	}
	return out, nil
}

func (m *memCommands) FindSentByDevice(_ context.Context, deviceUniqueID string) (*domain.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *domain.Command
	for _, cmd := range m.commands {
		if cmd.Status != domain.StatusSent || m.uniqueID[cmd.DeviceID] != deviceUniqueID {
			continue
		}
		if latest == nil || (cmd.SentAt != nil && latest.SentAt != nil && cmd.SentAt.After(*latest.SentAt)) {
			latest = cmd
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	c := *latest
	c.DeviceUniqueID = deviceUniqueID
	return &c, nil
}

func (m *memCommands) transition(id string, from []domain.CommandStatus, to domain.CommandStatus, dequeue bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd, ok := m.commands[id]
	if !ok {
		return false
	}
	for _, s := range from {
		if cmd.Status == s {
			cmd.Status = to
			if dequeue {
				delete(m.queue, id)
			}
			return true
		}
	}
	return false
}

func (m *memCommands) MarkSent(_ context.Context, id string, at time.Time) (bool, error) {
	if !m.transition(id, []domain.CommandStatus{domain.StatusPending}, domain.StatusSent, false) {
		return false, nil
	}
	m.mu.Lock()
	m.commands[id].SentAt = &at
	m.mu.Unlock()
	return true, nil
}

func (m *memCommands) MarkExecuted(_ context.Context, id string) (bool, error) {
	return m.transition(id,
		[]domain.CommandStatus{domain.StatusSent, domain.StatusDelivered},
		domain.StatusExecuted, true), nil
}

func (m *memCommands) MarkFailed(_ context.Context, id string) (bool, error) {
	return m.transition(id,
		[]domain.CommandStatus{domain.StatusPending, domain.StatusSent},
		domain.StatusFailed, true), nil
}

func (m *memCommands) Requeue(_ context.Context, id string, retryCount int, nextAttempt time.Time) (bool, error) {
	if !m.transition(id, []domain.CommandStatus{domain.StatusSent}, domain.StatusPending, false) {
		return false, nil
	}
	m.mu.Lock()
	m.commands[id].RetryCount = retryCount
	m.commands[id].SentAt = nil
	m.queue[id] = nextAttempt
	m.mu.Unlock()
	return true, nil
}

func (m *memCommands) Cancel(_ context.Context, id string) (bool, error) {
	return m.transition(id,
		[]domain.CommandStatus{domain.StatusPending, domain.StatusSent, domain.StatusFailed},
		domain.StatusCancelled, true), nil
}

func (m *memCommands) ExpireOverdue(_ context.Context, now time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, cmd := range m.commands {
		if (cmd.Status == domain.StatusPending || cmd.Status == domain.StatusSent) && !cmd.ExpiresAt.After(now) {
			cmd.Status = domain.StatusExpired
			delete(m.queue, id)
			ids = append(ids, id)
		}
	}
	return ids, nil
}

var _ repository.CommandsRepository = (*memCommands)(nil)

// memSender records every transmission and can simulate disconnects.
type memSender struct {
	mu        sync.Mutex
	connected map[string]bool
	sent      []string // command frames in send order
	sendErr   error
}

func newMemSender(uids ...string) *memSender {
	s := &memSender{connected: make(map[string]bool)}
	for _, uid := range uids {
		s.connected[uid] = true
	}
	return s
}

func (s *memSender) Connected(uid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected[uid]
}

func (s *memSender) Send(uid string, frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, string(frame))
	return nil
}

func (s *memSender) sentFrames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

type fixture struct {
	repo   *memCommands
	sender *memSender
	disp   *Dispatcher
	clock  time.Time
}

func newFixture(t *testing.T, uids ...string) *fixture {
	t.Helper()
	f := &fixture{
		repo:   newMemCommands(),
		sender: newMemSender(uids...),
		clock:  time.Date(2025, 9, 8, 12, 0, 0, 0, time.UTC),
	}
	cfg := config.DispatcherConfig{
		DrainInterval:   10 * time.Second,
		TimeoutInterval: 5 * time.Minute,
		ExpireInterval:  time.Hour,
		AckTimeout:      2 * time.Minute,
		RetryBackoff:    30 * time.Second,
	}
	f.disp = New(f.repo, f.sender, nil, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.disp.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) advance(d time.Duration) { f.clock = f.clock.Add(d) }

func (f *fixture) addCommand(id, deviceID, uid string, priority domain.CommandPriority, maxRetries int, ttl time.Duration) {
	f.repo.uniqueID[deviceID] = uid
	f.repo.Create(context.Background(), &domain.Command{
		CommandID:  id,
		DeviceID:   deviceID,
		Type:       codec.TypePositionSingle,
		Priority:   priority,
		Status:     domain.StatusPending,
		MaxRetries: maxRetries,
		CreatedAt:  f.clock,
		ExpiresAt:  f.clock.Add(ttl),
	})
}

func (f *fixture) status(t *testing.T, id string) domain.CommandStatus {
	t.Helper()
	cmd, err := f.repo.Get(context.Background(), id)
	require.NoError(t, err)
	return cmd.Status
}

func TestDrainSendsDueCommand(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 3, time.Hour)

	require.NoError(t, f.disp.DrainOnce(context.Background()))

	assert.Equal(t, domain.StatusSent, f.status(t, "cmd-1"))
	frames := f.sender.sentFrames()
	require.Len(t, frames, 1)
	assert.Contains(t, frames[0], "47733387")
}

func TestDrainSkipsDisconnectedDevice(t *testing.T) {
	f := newFixture(t) // nothing connected
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 3, time.Hour)

	require.NoError(t, f.disp.DrainOnce(context.Background()))

	assert.Equal(t, domain.StatusPending, f.status(t, "cmd-1"))
	assert.Empty(t, f.sender.sentFrames())
}

func TestDrainPriorityThenFIFO(t *testing.T) {
	f := newFixture(t, "devA", "devB", "devC")

	f.addCommand("cmd-A", "dA", "devA", domain.PriorityNormal, 3, time.Hour)
	f.advance(time.Second)
	f.addCommand("cmd-B", "dB", "devB", domain.PriorityCritical, 3, time.Hour)
	f.advance(time.Second)
	f.addCommand("cmd-C", "dC", "devC", domain.PriorityNormal, 3, time.Hour)

	require.NoError(t, f.disp.DrainOnce(context.Background()))

	frames := f.sender.sentFrames()
	require.Len(t, frames, 3)
	assert.Contains(t, frames[0], "devB")
	assert.Contains(t, frames[1], "devA")
	assert.Contains(t, frames[2], "devC")
}

func TestDrainOneInFlightPerDevice(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityHigh, 3, time.Hour)
	f.advance(time.Second)
	f.addCommand("cmd-2", "dev-1", "47733387", domain.PriorityHigh, 3, time.Hour)

	require.NoError(t, f.disp.DrainOnce(context.Background()))

	assert.Equal(t, domain.StatusSent, f.status(t, "cmd-1"))
	assert.Equal(t, domain.StatusPending, f.status(t, "cmd-2"))
	assert.Len(t, f.sender.sentFrames(), 1)
}

func TestAckTimeoutRetriesThenFails(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 2, 24*time.Hour)
	ctx := context.Background()

	for attempt := 0; attempt < 3; attempt++ {
		require.NoError(t, f.disp.DrainOnce(ctx))
		require.Equal(t, domain.StatusSent, f.status(t, "cmd-1"), "attempt %d", attempt)

		f.advance(3 * time.Minute)
		require.NoError(t, f.disp.TimeoutSweepOnce(ctx))

		if attempt < 2 {
			require.Equal(t, domain.StatusPending, f.status(t, "cmd-1"), "attempt %d", attempt)
			f.advance(time.Minute) // past the retry backoff
		}
	}

	assert.Equal(t, domain.StatusFailed, f.status(t, "cmd-1"))
	assert.Len(t, f.sender.sentFrames(), 3)
}

func TestExpirationOverridesRetryBudget(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 5, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, f.disp.DrainOnce(ctx))
	require.Equal(t, domain.StatusSent, f.status(t, "cmd-1"))

	f.advance(11 * time.Minute)
	require.NoError(t, f.disp.ExpireSweepOnce(ctx))

	assert.Equal(t, domain.StatusExpired, f.status(t, "cmd-1"))

	// The device token is free again for later commands.
	f.addCommand("cmd-2", "dev-1", "47733387", domain.PriorityNormal, 1, time.Hour)
	require.NoError(t, f.disp.DrainOnce(ctx))
	assert.Equal(t, domain.StatusSent, f.status(t, "cmd-2"))
}

func TestExpiredCommandNeverDrained(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 3, 5*time.Minute)

	f.advance(10 * time.Minute)
	require.NoError(t, f.disp.DrainOnce(context.Background()))

	assert.Equal(t, domain.StatusPending, f.status(t, "cmd-1"))
	assert.Empty(t, f.sender.sentFrames())
}

func TestPositiveAckExecutesCommand(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 3, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.disp.DrainOnce(ctx))
	f.disp.HandleAck(ctx, &codec.Ack{UniqueID: "47733387", Keyword: "StatusReq", OK: true})

	assert.Equal(t, domain.StatusExecuted, f.status(t, "cmd-1"))
}

func TestNegativeAckSpendsRetry(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 1, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.disp.DrainOnce(ctx))
	f.disp.HandleAck(ctx, &codec.Ack{UniqueID: "47733387", Keyword: "StatusReq", OK: false})
	require.Equal(t, domain.StatusPending, f.status(t, "cmd-1"))

	f.advance(time.Minute)
	require.NoError(t, f.disp.DrainOnce(ctx))
	f.disp.HandleAck(ctx, &codec.Ack{UniqueID: "47733387", Keyword: "StatusReq", OK: false})

	assert.Equal(t, domain.StatusFailed, f.status(t, "cmd-1"))
}

func TestAckWithoutInflightCommandIgnored(t *testing.T) {
	f := newFixture(t, "47733387")
	// Must not panic or create state.
	f.disp.HandleAck(context.Background(), &codec.Ack{UniqueID: "47733387", Keyword: "StatusReq", OK: true})
}

func TestSendFailureSpendsRetry(t *testing.T) {
	f := newFixture(t, "47733387")
	f.sender.sendErr = fmt.Errorf("broken pipe")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 2, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.disp.DrainOnce(ctx))

	cmd, err := f.repo.Get(ctx, "cmd-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, cmd.Status)
	assert.Equal(t, 1, cmd.RetryCount)
}

func TestCancelledBeforeDrainNeverSent(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 3, time.Hour)
	ctx := context.Background()

	ok, err := f.repo.Cancel(ctx, "cmd-1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, f.disp.DrainOnce(ctx))

	assert.Equal(t, domain.StatusCancelled, f.status(t, "cmd-1"))
	assert.Empty(t, f.sender.sentFrames())
}

func TestCancelInFlightCommandFreesDevice(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 3, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.disp.DrainOnce(ctx))
	require.Equal(t, domain.StatusSent, f.status(t, "cmd-1"))

	q := NewQueue(f.repo, nil, f.disp, 3, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := q.Cancel(ctx, "cmd-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, f.status(t, "cmd-1"))

	// No sweep ever sees the cancelled command again.
	f.advance(10 * time.Minute)
	require.NoError(t, f.disp.TimeoutSweepOnce(ctx))
	require.NoError(t, f.disp.ExpireSweepOnce(ctx))

	f.addCommand("cmd-2", "dev-1", "47733387", domain.PriorityCritical, 3, time.Hour)
	require.NoError(t, f.disp.DrainOnce(ctx))

	assert.Equal(t, domain.StatusSent, f.status(t, "cmd-2"))
	assert.Len(t, f.sender.sentFrames(), 2)
}

func TestAckWithNoSentCommandClearsStaleSlot(t *testing.T) {
	f := newFixture(t, "47733387")
	require.True(t, f.disp.inflight.TryAcquire("47733387", "cmd-stale"))

	f.disp.HandleAck(context.Background(), &codec.Ack{UniqueID: "47733387", Keyword: "StatusReq", OK: true})

	assert.True(t, f.disp.inflight.TryAcquire("47733387", "cmd-next"))
}

func TestRetryBackoffDelaysRedrive(t *testing.T) {
	f := newFixture(t, "47733387")
	f.addCommand("cmd-1", "dev-1", "47733387", domain.PriorityNormal, 3, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.disp.DrainOnce(ctx))
	f.advance(3 * time.Minute)
	require.NoError(t, f.disp.TimeoutSweepOnce(ctx))
	require.Equal(t, domain.StatusPending, f.status(t, "cmd-1"))

	// Inside the backoff window the command is not due yet.
	f.advance(10 * time.Second)
	require.NoError(t, f.disp.DrainOnce(ctx))
	assert.Len(t, f.sender.sentFrames(), 1)

	f.advance(time.Minute)
	require.NoError(t, f.disp.DrainOnce(ctx))
	assert.Len(t, f.sender.sentFrames(), 2)
}
