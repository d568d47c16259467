package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TCPConnections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_tcp_connections_total",
		Help: "TCP connections accepted from terminals",
	})
	FramesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_frames_received_total",
		Help: "Wire frames read across all connections",
	})
	DecodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_decode_errors_total",
		Help: "Frames dropped by the decoder, by error kind",
	}, []string{"kind"})
	PositionsPersisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_positions_persisted_total",
		Help: "Telemetry records written to storage",
	})
	IngestRejects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_ingest_rejects_total",
		Help: "Telemetry records rejected before storage (range checks)",
	})
	UnknownDevicesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_unknown_devices_created_total",
		Help: "Placeholder identities created on first sighting",
	})
	CommandsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_commands_enqueued_total",
		Help: "Commands accepted at the submission boundary",
	})
	CommandsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_commands_sent_total",
		Help: "Command frames transmitted to terminals",
	})
	CommandOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_command_outcomes_total",
		Help: "Commands reaching EXECUTED/FAILED/EXPIRED/CANCELLED",
	}, []string{"status"})
	DecodeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracker_decode_latency_seconds",
		Help:    "Per-frame decode latency",
		Buckets: prometheus.DefBuckets,
	})
)

func ObserveDecodeLatency(start time.Time) {
	DecodeLatency.Observe(time.Since(start).Seconds())
}

// StartMetricsServer serves /metrics and /healthz until the process exits.
func StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return http.ListenAndServe(addr, mux)
}
