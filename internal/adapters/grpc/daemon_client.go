package grpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// DaemonClient calls the shard daemon over gRPC
type DaemonClient struct {
	conn          *grpc.ClientConn
	authorization string
}

// NewDaemonClient connects to address (host:port or unix:<path>), presenting the
// given Basic credentials on every call. Empty user sends no credentials.
func NewDaemonClient(address, user, password string) (*DaemonClient, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon at %s: %w", address, err)
	}
	return newDaemonClient(conn, user, password), nil
}

func newDaemonClient(conn *grpc.ClientConn, user, password string) *DaemonClient {
	c := &DaemonClient{conn: conn}
	if user != "" {
		c.authorization = "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
	}
	return c
}

// Close closes the gRPC connection
func (c *DaemonClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Call invokes method with args and returns the decoded response object. Domain
// failures come back as *shared.DomainError values.
func (c *DaemonClient) Call(ctx context.Context, method string, args map[string]interface{}) (map[string]interface{}, error) {
	in, err := ToStruct(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode arguments: %w", err)
	}
	out := new(structpb.Struct)
	var opts []grpc.CallOption
	if c.authorization != "" {
		opts = append(opts, grpc.PerRPCCredentials(basicCredentials(c.authorization)))
	}
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, fromStatus(err)
	}
	return out.AsMap(), nil
}

// CallInto invokes method and decodes the response into dst
func (c *DaemonClient) CallInto(ctx context.Context, method string, args map[string]interface{}, dst interface{}) error {
	resp, err := c.Call(ctx, method, args)
	if err != nil {
		return err
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// Status calls the daemon's Status RPC
func (c *DaemonClient) Status(ctx context.Context) (map[string]interface{}, error) {
	return c.Call(ctx, MethodStatus, nil)
}

type basicCredentials string

func (b basicCredentials) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": string(b)}, nil
}

func (basicCredentials) RequireTransportSecurity() bool {
	return false
}
