package setup

import (
	"context"
	"reflect"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// RequestName is the bare type name of a command or query, e.g. "MoveUnitCommand"
func RequestName(request mediator.Request) string {
	t := reflect.TypeOf(request)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// LoggingMiddleware attaches logger to the request context, unless the caller already
// set one, and logs failed requests
func LoggingMiddleware(logger common.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if _, ok := common.LoggerFromContextOK(ctx); !ok {
			ctx = common.WithLogger(ctx, logger)
		}
		resp, err := next(ctx, request)
		if err != nil {
			level := "WARN"
			if shared.KindOf(err) == "" {
				level = "ERROR"
			}
			common.LoggerFromContext(ctx).Log(level, "request failed", map[string]interface{}{
				"request": RequestName(request),
				"kind":    string(shared.KindOf(err)),
				"error":   err.Error(),
			})
		}
		return resp, err
	}
}
