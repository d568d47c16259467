package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"tracker-svr/internal/domain"
)

// Store is the Redis hot-state projection consumed by the external platform:
// latest position per terminal, connection presence, daily command counters.
// Never authoritative; Postgres is. Best-effort writers log and move on so a
// Redis hiccup cannot stall the ingest path.
type Store struct {
	rdb    *redis.Client
	logger *slog.Logger
}

func New(rdb *redis.Client, logger *slog.Logger) *Store {
	return &Store{rdb: rdb, logger: logger.With("component", "store")}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

type lastPosition struct {
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lon"`
	Speed      float64   `json:"spd"`
	Course     float64   `json:"crs"`
	RecordedAt time.Time `json:"recorded_at"`
	Dialect    string    `json:"dialect"`
}

// SaveLastPositionSafe caches the newest position under dev:<uid>:last_position.
func (s *Store) SaveLastPositionSafe(ctx context.Context, uniqueID string, p *domain.Position) {
	b, err := json.Marshal(lastPosition{
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		Speed:      p.Speed,
		Course:     p.Course,
		RecordedAt: p.RecordedAt,
		Dialect:    p.Dialect,
	})
	if err != nil {
		s.logger.Error("marshal last position", "unique_id", uniqueID, "err", err)
		return
	}
	key := "dev:" + uniqueID + ":last_position"
	if err := s.rdb.Set(ctx, key, b, 24*time.Hour).Err(); err != nil {
		s.logger.Warn("redis SET failed", "key", key, "err", err)
	}
}

// SetConnectedSafe marks a terminal's connection presence. The TTL guards
// against a crashed server leaving stale presence behind; the connection
// loop refreshes it implicitly with every frame's last-position write.
func (s *Store) SetConnectedSafe(ctx context.Context, uniqueID, remoteAddr string) {
	key := "dev:" + uniqueID + ":conn"
	if err := s.rdb.Set(ctx, key, remoteAddr, 10*time.Minute).Err(); err != nil {
		s.logger.Warn("redis SET failed", "key", key, "err", err)
	}
}

func (s *Store) ClearConnectedSafe(ctx context.Context, uniqueID string) {
	key := "dev:" + uniqueID + ":conn"
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("redis DEL failed", "key", key, "err", err)
	}
}

// IncrDailyCommandCount bumps the per-terminal daily command counter, for
// the operator-facing load view. Keys expire two days out.
func (s *Store) IncrDailyCommandCount(ctx context.Context, uniqueID string, day time.Time) (int64, error) {
	key := "cmd:daily:" + uniqueID + ":" + day.UTC().Format("20060102")
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if n == 1 {
		_ = s.rdb.Expire(ctx, key, 48*time.Hour).Err()
	}
	return n, nil
}
