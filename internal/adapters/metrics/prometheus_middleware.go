package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// PrometheusMiddleware creates a middleware that records command execution metrics
//
// Command names are extracted via reflection and simplified to remove package prefixes.
// For example: "*commands.MoveUnitCommand" becomes "MoveUnitCommand"
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), err == nil, string(shared.KindOf(err)))
		return response, err
	}
}

// extractCommandName extracts a clean command name from the request using reflection
func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
