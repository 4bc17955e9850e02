package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetricsCollector handles all command/query execution metrics
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Command and query execution duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5},
			},
			[]string{"command", "status"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Total number of commands and queries by type, status and error kind",
			},
			[]string{"command", "status", "kind"},
		),
	}
}

// Register registers all command metrics
func (c *CommandMetricsCollector) Register(reg prometheus.Registerer) error {
	return registerAll(reg, c.commandDuration, c.commandsTotal)
}

// RecordCommandExecution records command execution metrics. kind is the domain error
// kind of a failed command, empty otherwise.
func (c *CommandMetricsCollector) RecordCommandExecution(commandName string, duration float64, success bool, kind string) {
	status := "success"
	if !success {
		status = "error"
	}
	c.commandDuration.WithLabelValues(commandName, status).Observe(duration)
	c.commandsTotal.WithLabelValues(commandName, status, kind).Inc()
}
