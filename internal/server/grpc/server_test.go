package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
	"github.com/dmitrijs2005/tgauth/internal/logging"
	pb "github.com/dmitrijs2005/tgauth/internal/proto"
	"github.com/dmitrijs2005/tgauth/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:0", nopLogger{}, &fakeAuth{}, "secret")
	if err != nil {
		t.Fatalf("NewGRPCServer error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:99999", nopLogger{}, &fakeAuth{}, "secret")
	if err != nil {
		t.Fatalf("NewGRPCServer error (constructor should not fail here): %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// startBufconn serves s over an in-memory listener and returns a client
// connection to it.
func startBufconn(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}

func TestServe_EndToEnd(t *testing.T) {
	fa := &fakeAuth{}
	s, _ := NewGRPCServer("", nopLogger{}, fa, "secret")
	conn := startBufconn(t, s)
	client := pb.NewTelegramAuthClient(conn)
	ctx := context.Background()

	t.Run("ping", func(t *testing.T) {
		var header metadata.MD
		resp, err := client.Ping(ctx, pb.NewStruct(nil), grpc.Header(&header))
		require.NoError(t, err)
		assert.Equal(t, "OK", pb.Fields(resp)["status"])
		assert.Len(t, header.Get(requestIDHeaderName), 1)
	})

	t.Run("health", func(t *testing.T) {
		resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: pb.ServiceName})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	})

	t.Run("protected method without token", func(t *testing.T) {
		_, err := client.Revoke(ctx, pb.NewStruct(nil))
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("protected method with token", func(t *testing.T) {
		token, err := auth.GenerateToken("user-7", "", []byte("secret"), time.Minute)
		require.NoError(t, err)

		octx := metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)
		resp, err := client.Revoke(octx, pb.NewStruct(nil))
		require.NoError(t, err)
		assert.Equal(t, "revoked", pb.Fields(resp)["status"])
		assert.Equal(t, "user-7", fa.lastUser)
	})
}
