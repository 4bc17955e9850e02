package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	transferCmd "github.com/andrescamacho/spaceshard-go/internal/application/transfer/commands"
)

// MockMediator is a test double for the Mediator interface. Handlers that dispatch
// follow-up requests (MoveUnit hands wormhole moves to TransferUnit) are tested
// against it.
type MockMediator struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, request mediator.Request) (mediator.Response, error)
	requests []mediator.Request
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{}
}

// Send records the request, then answers with the custom function or a default
func (m *MockMediator) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, request)
	fn := m.sendFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, request)
	}

	switch req := request.(type) {
	case *transferCmd.TransferUnitCommand:
		return &transferCmd.TransferUnitResponse{
			Redirect: fmt.Sprintf("http://%s.test/users/%s/units/%s", req.Wormhole, req.PlayerID, req.UnitID),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request mediator.Request) (mediator.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// Requests returns the requests sent so far
func (m *MockMediator) Requests() []mediator.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mediator.Request(nil), m.requests...)
}

// Register is a no-op
func (m *MockMediator) Register(requestType reflect.Type, handler mediator.RequestHandler) error {
	return nil
}

// Use is a no-op
func (m *MockMediator) Use(middleware mediator.Middleware) {}

var _ mediator.Mediator = (*MockMediator)(nil)
