package mediator

import (
	"context"
)

// Request is a command or query
type Request interface{}

// Response is whatever a handler returns for a request
type Response interface{}

// RequestHandler handles one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a function to RequestHandler
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware wraps handler execution with cross-cutting concerns such as logging
// and metrics
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
