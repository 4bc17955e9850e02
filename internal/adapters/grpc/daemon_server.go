package grpc

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/spaceshard-go/internal/application/auth"
	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
)

// StatusFunc reports daemon health for the Status RPC
type StatusFunc func() map[string]interface{}

// DaemonServer serves the operator RPC service over the mediator
type DaemonServer struct {
	mediator    mediator.Mediator
	credentials auth.Credentials
	logger      common.Logger
	status      StatusFunc
	startedAt   time.Time
	grpcServer  *grpc.Server
}

// NewDaemonServer creates a daemon server. status may be nil.
func NewDaemonServer(m mediator.Mediator, credentials auth.Credentials, logger common.Logger, status StatusFunc) *DaemonServer {
	s := &DaemonServer{
		mediator:    m,
		credentials: credentials,
		logger:      logger,
		status:      status,
		startedAt:   time.Now(),
	}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(s.authenticate))
	s.grpcServer.RegisterService(s.serviceDesc(), s)
	return s
}

// Listen opens the daemon listener. An address of the form unix:<path> listens on a
// Unix socket readable by the owner only; anything else is a TCP address.
func Listen(address string) (net.Listener, error) {
	if path, ok := strings.CutPrefix(address, "unix:"); ok {
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("failed to remove existing socket: %w", err)
		}
		listener, err := net.Listen("unix", path)
		if err != nil {
			return nil, fmt.Errorf("failed to create unix socket listener: %w", err)
		}
		if err := os.Chmod(path, 0600); err != nil {
			listener.Close()
			return nil, fmt.Errorf("failed to set socket permissions: %w", err)
		}
		return listener, nil
	}
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return listener, nil
}

// Serve serves on listener until ctx is cancelled, then stops gracefully
func (s *DaemonServer) Serve(ctx context.Context, listener net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.grpcServer.Serve(listener); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.grpcServer.GracefulStop()
		return nil
	}
}

// Stop stops the server immediately
func (s *DaemonServer) Stop() {
	s.grpcServer.Stop()
}

// serviceDesc builds the service description: one unary method per operation
func (s *DaemonServer) serviceDesc() *grpc.ServiceDesc {
	desc := &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*interface{})(nil),
		Metadata:    "spaceshard/daemon.proto",
	}
	for _, name := range Methods() {
		method := name
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: method,
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				in := new(structpb.Struct)
				if err := dec(in); err != nil {
					return nil, err
				}
				call := func(ctx context.Context, req interface{}) (interface{}, error) {
					return srv.(*DaemonServer).invoke(ctx, method, req.(*structpb.Struct))
				}
				if interceptor == nil {
					return call(ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
				return interceptor(ctx, in, info, call)
			},
		})
	}
	return desc
}

func (s *DaemonServer) invoke(ctx context.Context, method string, args *structpb.Struct) (*structpb.Struct, error) {
	if method == MethodStatus {
		return s.statusReport()
	}
	req, err := decodeRequest(method, args)
	if err != nil {
		return nil, toStatus(wrapInvalid(err))
	}
	resp, err := s.mediator.Send(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := ToStruct(resp)
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}

func (s *DaemonServer) statusReport() (*structpb.Struct, error) {
	report := map[string]interface{}{
		"uptime_seconds": time.Since(s.startedAt).Seconds(),
		"methods":        len(Methods()),
	}
	if s.status != nil {
		for k, v := range s.status() {
			report[k] = v
		}
	}
	return ToStruct(report)
}

// authenticate resolves the caller from Basic credentials in the authorization
// metadata, like the HTTP gateway does, and attaches the logger
func (s *DaemonServer) authenticate(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	user, password, ok := basicAuth(ctx)
	caller := s.credentials.ResolveRole(user, password, ok)
	ctx = auth.WithCaller(ctx, caller)
	if s.logger != nil {
		ctx = common.WithLogger(ctx, s.logger)
	}
	start := time.Now()
	resp, err := handler(ctx, req)
	if s.logger != nil {
		fields := map[string]interface{}{
			"method":      info.FullMethod,
			"role":        caller.Role.String(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.logger.Log("DEBUG", "RPC served", fields)
	}
	return resp, err
}

func basicAuth(ctx context.Context) (user, password string, ok bool) {
	md, found := metadata.FromIncomingContext(ctx)
	if !found {
		return "", "", false
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", "", false
	}
	encoded, isBasic := strings.CutPrefix(values[0], "Basic ")
	if !isBasic {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	user, password, ok = strings.Cut(string(decoded), ":")
	return user, password, ok
}
