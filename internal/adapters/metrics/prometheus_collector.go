package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Namespace for all metrics
	namespace = "spaceshard"
	// Subsystem for shard daemon metrics
	subsystem = "shard"
)

// Collectors bundles every collector of the shard daemon
type Collectors struct {
	Registry   *prometheus.Registry
	Simulation *SimulationMetricsCollector
	Commands   *CommandMetricsCollector
	API        *APIMetricsCollector
}

// NewCollectors creates a registry with the Go runtime collectors and every shard
// collector registered. playerCount feeds the players gauge and may be nil.
func NewCollectors(playerCount func() int) (*Collectors, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}

	c := &Collectors{
		Registry:   reg,
		Simulation: NewSimulationMetricsCollector(playerCount),
		Commands:   NewCommandMetricsCollector(),
		API:        NewAPIMetricsCollector(),
	}
	for _, r := range []interface {
		Register(prometheus.Registerer) error
	}{c.Simulation, c.Commands, c.API} {
		if err := r.Register(reg); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{Registry: c.Registry})
}

func registerAll(reg prometheus.Registerer, metrics ...prometheus.Collector) error {
	for _, metric := range metrics {
		if err := reg.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
