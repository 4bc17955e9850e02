package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
)

type pingQuery struct{ Value string }

func TestSend_DispatchesByType(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, mediator.HandlerFunc(
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
			return "pong:" + request.(*pingQuery).Value, nil
		})))

	resp, err := m.Send(context.Background(), &pingQuery{Value: "x"})

	require.NoError(t, err)
	assert.Equal(t, "pong:x", resp)
}

func TestSend_UnknownType(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.Error(t, err)
}

func TestRegister_Duplicate(t *testing.T) {
	m := mediator.NewMediator()
	h := mediator.HandlerFunc(func(context.Context, mediator.Request) (mediator.Response, error) { return nil, nil })

	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, h))
	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, h))
}

func TestMiddleware_OrderAndErrors(t *testing.T) {
	m := mediator.NewMediator()
	var trace []string
	boom := errors.New("boom")
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, mediator.HandlerFunc(
		func(context.Context, mediator.Request) (mediator.Response, error) {
			trace = append(trace, "handler")
			return nil, boom
		})))
	for _, name := range []string{"outer", "inner"} {
		name := name
		m.Use(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			trace = append(trace, name)
			return next(ctx, request)
		})
	}

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"outer", "inner", "handler"}, trace)
}
