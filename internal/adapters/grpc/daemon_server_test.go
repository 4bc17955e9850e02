package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/andrescamacho/spaceshard-go/internal/application/auth"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/test/helpers"
)

var testCredentials = auth.Credentials{AdminUser: "admin", AdminPassword: "password", SharedPassword: "caramba"}

func startDaemon(t *testing.T, app *helpers.TestApp, user, password string) *DaemonClient {
	t.Helper()
	listener := bufconn.Listen(1 << 20)
	server := NewDaemonServer(app.Mediator, testCredentials, nil, func() map[string]interface{} {
		return map[string]interface{}{"players": app.Players.Count()}
	})
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = server.Serve(ctx, listener) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return listener.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	client := newDaemonClient(conn, user, password)
	t.Cleanup(func() {
		client.Close()
		cancel()
		server.Stop()
	})
	return client
}

func TestDaemon_RegisterAndQueryPlayer(t *testing.T) {
	// Arrange
	app := helpers.NewTestApp(t)
	client := startDaemon(t, app, "admin", "password")
	ctx := context.Background()

	// Act
	registered, err := client.Call(ctx, "RegisterPlayer", map[string]interface{}{"playerId": "alice", "pseudo": "Alice"})
	require.NoError(t, err)
	var units struct {
		Units []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		}
	}
	err = client.CallInto(ctx, "ListUnits", map[string]interface{}{"playerId": "alice"}, &units)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, true, registered["Created"])
	assert.Equal(t, "Alice", registered["Player"].(map[string]interface{})["pseudo"])
	require.Len(t, units.Units, 2)
	assert.Equal(t, "scout", units.Units[0].Type)
	assert.Equal(t, "builder", units.Units[1].Type)
}

func TestDaemon_MapsDomainErrors(t *testing.T) {
	app := helpers.NewTestApp(t)
	client := startDaemon(t, app, "", "")
	ctx := context.Background()

	_, err := client.Call(ctx, "GetPlayer", map[string]interface{}{"playerId": "nobody"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	app.AddEmptyPlayer(t, "alice", nil)
	_, err = client.Call(ctx, "CreateUnit", map[string]interface{}{"playerId": "alice", "type": "fighter"})
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)

	_, err = client.Call(ctx, "GetUnit", map[string]interface{}{"playerId": 42})
	assert.ErrorIs(t, err, shared.ErrInvalidRequest)
}

func TestDaemon_Status(t *testing.T) {
	app := helpers.NewTestApp(t)
	app.AddPlayer(t, "alice")
	client := startDaemon(t, app, "", "")

	report, err := client.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, float64(1), report["players"])
	assert.Contains(t, report, "uptime_seconds")
}

func TestBasicAuthMetadataRoundTrip(t *testing.T) {
	client := newDaemonClient(nil, "shard-east", "caramba")
	md, err := basicCredentials(client.authorization).GetRequestMetadata(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Basic c2hhcmQtZWFzdDpjYXJhbWJh", md["authorization"])
}

func TestMethodsAreSortedAndIncludeStatus(t *testing.T) {
	methods := Methods()

	assert.Contains(t, methods, MethodStatus)
	assert.Contains(t, methods, "MoveUnit")
	assert.IsIncreasing(t, methods)
}
