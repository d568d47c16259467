package domain

import (
	"fmt"
	"time"
)

// CommandStatus is the lifecycle state of a command (commands table).
type CommandStatus string

const (
	StatusPending   CommandStatus = "PENDING"
	StatusSent      CommandStatus = "SENT"
	StatusDelivered CommandStatus = "DELIVERED"
	StatusExecuted  CommandStatus = "EXECUTED"
	StatusFailed    CommandStatus = "FAILED"
	StatusExpired   CommandStatus = "EXPIRED"
	StatusCancelled CommandStatus = "CANCELLED"
)

// Terminal reports whether the status can never be left again. FAILED is not
// terminal: a failed command can still be cancelled, and the retry path goes
// through FAILED only when the budget is exhausted.
func (s CommandStatus) Terminal() bool {
	switch s {
	case StatusExecuted, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// CommandPriority orders dispatch selection. Higher wins; FIFO within a band.
type CommandPriority int

const (
	PriorityLow      CommandPriority = 0
	PriorityNormal   CommandPriority = 1
	PriorityHigh     CommandPriority = 2
	PriorityCritical CommandPriority = 3
)

func (p CommandPriority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityNormal:
		return "NORMAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityCritical:
		return "CRITICAL"
	}
	return fmt.Sprintf("PRIORITY(%d)", int(p))
}

// ParsePriority maps the wire name back to a priority. Empty string means
// NORMAL so callers can omit it.
func ParsePriority(s string) (CommandPriority, error) {
	switch s {
	case "", "NORMAL":
		return PriorityNormal, nil
	case "LOW":
		return PriorityLow, nil
	case "HIGH":
		return PriorityHigh, nil
	case "CRITICAL":
		return PriorityCritical, nil
	}
	return PriorityNormal, fmt.Errorf("unknown priority %q", s)
}

// Command is an operator-issued instruction for one device. Owned by the
// queue until it reaches a terminal status; the dispatcher holds a transient
// per-device lease while a send is in flight.
type Command struct {
	CommandID string            `db:"command_id"`
	DeviceID  string            `db:"device_id"`
	Type      string            `db:"command_type"`
	Priority  CommandPriority   `db:"priority"`
	Payload   map[string]string `db:"payload"`
	Status    CommandStatus     `db:"status"`

	RetryCount int `db:"retry_count"`
	MaxRetries int `db:"max_retries"`

	CreatedAt time.Time  `db:"created_at"`
	SentAt    *time.Time `db:"sent_at"`
	ExpiresAt time.Time  `db:"expires_at"`

	// Joined from devices for dispatch (the wire needs the unique id, the
	// table stores the device FK).
	DeviceUniqueID string `db:"unique_id"`
}

// CommandStats is the read-only aggregate projection for the operator view.
type CommandStats struct {
	ByStatus   map[CommandStatus]int64
	ByPriority map[CommandPriority]int64
}
