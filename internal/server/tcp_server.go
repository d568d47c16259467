package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"tracker-svr/internal/codec"
	"tracker-svr/internal/domain"
	"tracker-svr/internal/link"
	"tracker-svr/internal/observability"
	"tracker-svr/internal/pipeline"
	"tracker-svr/internal/resolver"
	"tracker-svr/internal/store"
	"tracker-svr/internal/utilities"
)

const (
	keepAlivePeriod = 3 * time.Minute
	writeTimeout    = 10 * time.Second
	maxFrameBytes   = 64 * 1024
)

// Registry maps identified terminals to their live connections. It is the
// dispatcher's send path: a device is commandable exactly while its unique
// id is bound here.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]net.Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]net.Conn)}
}

func (r *Registry) Bind(uniqueID string, conn net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.conns[uniqueID]; ok && old != conn {
		// Terminal reconnected before the old socket died; the new one wins.
		_ = old.Close()
	}
	r.conns[uniqueID] = conn
}

// Unbind drops the mapping only if conn still owns it, so a stale handler
// cleaning up cannot evict a newer connection.
func (r *Registry) Unbind(uniqueID string, conn net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[uniqueID] == conn {
		delete(r.conns, uniqueID)
	}
}

func (r *Registry) Connected(uniqueID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[uniqueID]
	return ok
}

// Send writes one raw frame to the terminal's connection. The write happens
// outside the registry lock: a terminal that stopped reading stalls only its
// own send, never binds or other devices. Per-connection write exclusivity
// comes from the dispatcher's single in-flight command per device.
func (r *Registry) Send(uniqueID string, frame []byte) error {
	r.mu.RLock()
	conn, ok := r.conns[uniqueID]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("device %s not connected", uniqueID)
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	_, err := conn.Write(frame)
	return err
}

// AckHandler consumes device acknowledgements routed off the read loop.
type AckHandler interface {
	HandleAck(ctx context.Context, ack *codec.Ack)
}

// Server is the TCP front end: one goroutine per terminal connection,
// frames handled synchronously in arrival order on that goroutine.
type Server struct {
	addr     string
	resolver *resolver.Resolver
	pipeline *pipeline.Pipeline
	registry *Registry
	store    *store.Store
	uplink   *link.Uplink
	rawLog   *utilities.RawFrameLogger
	acks     AckHandler
	logger   *slog.Logger
}

func New(
	addr string,
	res *resolver.Resolver,
	pipe *pipeline.Pipeline,
	registry *Registry,
	st *store.Store,
	up *link.Uplink,
	rawLog *utilities.RawFrameLogger,
	acks AckHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		addr:     addr,
		resolver: res,
		pipeline: pipe,
		registry: registry,
		store:    st,
		uplink:   up,
		rawLog:   rawLog,
		acks:     acks,
		logger:   logger.With("component", "tcp_server"),
	}
}

// ListenAndServe accepts terminal connections until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	s.logger.Info("listening for terminals", "addr", s.addr)
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Error("accept failed", "err", err)
			continue
		}
		observability.TCPConnections.Inc()
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	s.logger.Info("terminal connected", "remote", remote)

	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetKeepAlive(true)
		_ = tc.SetKeepAlivePeriod(keepAlivePeriod)
		_ = tc.SetNoDelay(true)
	}

	var boundUID string
	defer func() {
		_ = conn.Close()
		if boundUID != "" {
			s.registry.Unbind(boundUID, conn)
			if s.store != nil {
				s.store.ClearConnectedSafe(ctx, boundUID)
			}
			if s.uplink != nil {
				s.uplink.SendDeviceDisconnect(boundUID)
			}
		}
		s.logger.Info("terminal disconnected", "remote", remote, "unique_id", boundUID)
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 1024), maxFrameBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		observability.FramesReceived.Inc()

		if codec.IsAck(line) {
			s.handleAckLine(ctx, line)
			continue
		}

		identity, ok := s.handleTelemetryLine(ctx, line, remote)
		if !ok {
			continue
		}
		if boundUID == "" {
			boundUID = identity.UniqueID()
			s.registry.Bind(boundUID, conn)
			if s.store != nil {
				s.store.SetConnectedSafe(ctx, boundUID, remote)
			}
			if s.uplink != nil {
				s.uplink.SendDeviceConnect(boundUID, identity.Registered(), remote)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		s.logger.Warn("read loop ended", "remote", remote, "err", err)
	}
}

func (s *Server) handleAckLine(ctx context.Context, line string) {
	ack, err := codec.ParseAck(line)
	if err != nil {
		observability.DecodeErrors.WithLabelValues("ack").Inc()
		s.rawLog.Append("ack_err", line)
		s.logger.Warn("unparsable acknowledgement", "err", err)
		return
	}
	if s.acks != nil {
		s.acks.HandleAck(ctx, ack)
	}
}

// handleTelemetryLine decodes, resolves and ingests one frame. A failure
// drops the frame and keeps the connection open: one bad frame must not cost
// the frames behind it.
func (s *Server) handleTelemetryLine(ctx context.Context, line, remote string) (domain.ResolvedIdentity, bool) {
	start := time.Now()
	rec, err := codec.Decode(codec.RawFrame{
		Data:       []byte(line),
		Dialect:    codec.DialectSuntech,
		RemoteAddr: remote,
	})
	if err != nil {
		observability.DecodeErrors.WithLabelValues(decodeErrorKind(err)).Inc()
		s.rawLog.Append("decode_err", line)
		s.logger.Warn("frame dropped", "remote", remote, "err", err)
		return domain.ResolvedIdentity{}, false
	}
	observability.ObserveDecodeLatency(start)

	identity, err := s.resolver.Resolve(ctx, rec.UniqueID, rec.Dialect)
	if err != nil {
		s.logger.Error("identity resolution failed", "unique_id", rec.UniqueID, "err", err)
		return domain.ResolvedIdentity{}, false
	}

	if _, err := s.pipeline.Ingest(ctx, rec, identity); err != nil {
		s.logger.Warn("frame rejected", "unique_id", rec.UniqueID, "err", err)
		return domain.ResolvedIdentity{}, false
	}
	return identity, true
}

func decodeErrorKind(err error) string {
	switch {
	case errors.Is(err, codec.ErrUnrecognizedIdentifier):
		return "identifier"
	case errors.Is(err, codec.ErrBadTimestamp):
		return "timestamp"
	default:
		return "malformed"
	}
}
