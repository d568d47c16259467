package commandapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tracker-svr/internal/dispatcher"
	"tracker-svr/internal/domain"
	"tracker-svr/internal/repository"
	"tracker-svr/internal/resolver"
	"tracker-svr/proto/commandpb"
)

// Server exposes the command queue and device linking over gRPC. It is a
// thin translation layer: all rules live in the queue and the resolver.
type Server struct {
	commandpb.UnimplementedCommandsServer

	queue    *dispatcher.Queue
	resolver *resolver.Resolver
	logger   *slog.Logger
}

func New(queue *dispatcher.Queue, res *resolver.Resolver, logger *slog.Logger) *Server {
	return &Server{
		queue:    queue,
		resolver: res,
		logger:   logger.With("component", "commandapi"),
	}
}

// Serve blocks until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	commandpb.RegisterCommandsServer(grpcServer, s)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	s.logger.Info("command api listening", "addr", addr)
	return grpcServer.Serve(ln)
}

func (s *Server) SubmitCommand(ctx context.Context, req *commandpb.SubmitCommandRequest) (*commandpb.CommandInfo, error) {
	if req.GetDeviceId() == "" {
		return nil, status.Error(codes.InvalidArgument, "device_id is required")
	}
	priority, err := domain.ParsePriority(req.GetPriority())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	var payload map[string]string
	if raw := req.GetPayloadJson(); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "payload_json: %v", err)
		}
	}

	cmd, err := s.queue.Enqueue(ctx, req.GetDeviceId(), req.GetType(), priority, payload,
		time.Duration(req.GetTtlSeconds())*time.Second)
	if err != nil {
		switch {
		case errors.Is(err, dispatcher.ErrUnknownCommandType):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, dispatcher.ErrUnknownDevice):
			return nil, status.Error(codes.NotFound, err.Error())
		}
		s.logger.Error("submit command", "device_id", req.GetDeviceId(), "err", err)
		return nil, status.Error(codes.Internal, "submit command")
	}
	return toInfo(cmd), nil
}

func (s *Server) CancelCommand(ctx context.Context, req *commandpb.CommandRef) (*commandpb.CommandInfo, error) {
	cmd, err := s.queue.Cancel(ctx, req.GetCommandId())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, status.Errorf(codes.NotFound, "command %s not found", req.GetCommandId())
		case errors.Is(err, dispatcher.ErrNotCancellable):
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		}
		s.logger.Error("cancel command", "command_id", req.GetCommandId(), "err", err)
		return nil, status.Error(codes.Internal, "cancel command")
	}
	return toInfo(cmd), nil
}

func (s *Server) GetCommand(ctx context.Context, req *commandpb.CommandRef) (*commandpb.CommandInfo, error) {
	cmd, err := s.queue.Get(ctx, req.GetCommandId())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, status.Errorf(codes.NotFound, "command %s not found", req.GetCommandId())
		}
		s.logger.Error("get command", "command_id", req.GetCommandId(), "err", err)
		return nil, status.Error(codes.Internal, "get command")
	}
	return toInfo(cmd), nil
}

func (s *Server) ListCommands(ctx context.Context, req *commandpb.ListCommandsRequest) (*commandpb.ListCommandsResponse, error) {
	filters := repository.CommandFilters{
		DeviceID: req.GetDeviceId(),
		Status:   domain.CommandStatus(req.GetStatus()),
	}
	if req.GetPriority() != "" {
		p, err := domain.ParsePriority(req.GetPriority())
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		filters.Priority = &p
	}

	cmds, err := s.queue.List(ctx, filters)
	if err != nil {
		s.logger.Error("list commands", "err", err)
		return nil, status.Error(codes.Internal, "list commands")
	}

	resp := &commandpb.ListCommandsResponse{Commands: make([]*commandpb.CommandInfo, 0, len(cmds))}
	for _, cmd := range cmds {
		resp.Commands = append(resp.Commands, toInfo(cmd))
	}
	return resp, nil
}

func (s *Server) GetStats(ctx context.Context, _ *commandpb.StatsRequest) (*commandpb.StatsResponse, error) {
	stats, err := s.queue.Stats(ctx)
	if err != nil {
		s.logger.Error("command stats", "err", err)
		return nil, status.Error(codes.Internal, "command stats")
	}

	resp := &commandpb.StatsResponse{}
	for st, n := range stats.ByStatus {
		resp.ByStatus = append(resp.ByStatus, &commandpb.StatsCount{Key: string(st), Count: n})
	}
	for p, n := range stats.ByPriority {
		resp.ByPriority = append(resp.ByPriority, &commandpb.StatsCount{Key: p.String(), Count: n})
	}
	return resp, nil
}

func (s *Server) LinkDevice(ctx context.Context, req *commandpb.LinkDeviceRequest) (*commandpb.LinkDeviceResponse, error) {
	if req.GetUniqueId() == "" || req.GetDeviceId() == "" {
		return nil, status.Error(codes.InvalidArgument, "unique_id and device_id are required")
	}
	if err := s.resolver.Link(ctx, req.GetUniqueId(), req.GetDeviceId()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	}
	return &commandpb.LinkDeviceResponse{Linked: true}, nil
}

func toInfo(cmd *domain.Command) *commandpb.CommandInfo {
	info := &commandpb.CommandInfo{
		CommandId:  cmd.CommandID,
		DeviceId:   cmd.DeviceID,
		Type:       cmd.Type,
		Priority:   cmd.Priority.String(),
		Status:     string(cmd.Status),
		RetryCount: int32(cmd.RetryCount),
		MaxRetries: int32(cmd.MaxRetries),
		CreatedAt:  cmd.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt:  cmd.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if cmd.SentAt != nil {
		info.SentAt = cmd.SentAt.UTC().Format(time.RFC3339)
	}
	return info
}
