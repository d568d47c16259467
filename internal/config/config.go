package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// DispatcherConfig carries the scheduling knobs of the three background
// duties. All are env-driven defaults, not hard constants: they trade
// responsiveness against load.
type DispatcherConfig struct {
	DrainInterval   time.Duration
	TimeoutInterval time.Duration
	ExpireInterval  time.Duration
	AckTimeout      time.Duration
	RetryBackoff    time.Duration
}

type Config struct {
	TCPAddr     string
	MetricsAddr string
	GRPCAddr    string

	Database DatabaseConfig
	Redis    struct {
		Addr     string
		Password string
		DB       int
	}

	UplinkAddr string
	RawLogDir  string
	LogLevel   string

	Dispatcher        DispatcherConfig
	DefaultMaxRetries int
	DefaultCommandTTL time.Duration
}

func Load() *Config {
	cfg := &Config{}

	cfg.TCPAddr = getEnv("TCP_ADDR", ":5011")
	cfg.MetricsAddr = getEnv("METRICS_ADDR", ":9000")
	cfg.GRPCAddr = getEnv("GRPC_ADDR", ":50051")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "tracker")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "20"), 20)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.UplinkAddr = getEnv("UPLINK_ADDR", "")
	cfg.RawLogDir = getEnv("RAW_LOG_DIR", "logs")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.Dispatcher.DrainInterval = parseDur(getEnv("DRAIN_INTERVAL", "10s"), 10*time.Second)
	cfg.Dispatcher.TimeoutInterval = parseDur(getEnv("TIMEOUT_SWEEP_INTERVAL", "5m"), 5*time.Minute)
	cfg.Dispatcher.ExpireInterval = parseDur(getEnv("EXPIRE_SWEEP_INTERVAL", "60m"), 60*time.Minute)
	cfg.Dispatcher.AckTimeout = parseDur(getEnv("ACK_TIMEOUT", "2m"), 2*time.Minute)
	cfg.Dispatcher.RetryBackoff = parseDur(getEnv("RETRY_BACKOFF", "30s"), 30*time.Second)

	cfg.DefaultMaxRetries = parseInt(getEnv("COMMAND_MAX_RETRIES", "3"), 3)
	cfg.DefaultCommandTTL = parseDur(getEnv("COMMAND_TTL", "24h"), 24*time.Hour)

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
