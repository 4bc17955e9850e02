package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/spaceshard-go/internal/domain/building"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// SimulationMetricsCollector records what happens inside the simulation. It satisfies
// the player, combat and transfer reporter ports.
type SimulationMetricsCollector struct {
	unitsCreated    *prometheus.CounterVec
	unitsDestroyed  *prometheus.CounterVec
	combatTicks     prometheus.Counter
	combatants      prometheus.Gauge
	shots           *prometheus.CounterVec
	resourcesMined  *prometheus.CounterVec
	buildingEvents  *prometheus.CounterVec
	transfers       *prometheus.CounterVec
	playersGauge    prometheus.GaugeFunc
	hasPlayersGauge bool
}

// NewSimulationMetricsCollector creates the collector; playerCount may be nil
func NewSimulationMetricsCollector(playerCount func() int) *SimulationMetricsCollector {
	c := &SimulationMetricsCollector{
		unitsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "units_created_total",
			Help: "Units created by type",
		}, []string{"type"}),
		unitsDestroyed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "units_destroyed_total",
			Help: "Units destroyed in combat by type",
		}, []string{"type"}),
		combatTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "combat_ticks_total",
			Help: "Combat resolution passes",
		}),
		combatants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "combatants",
			Help: "Combat units taking part in the last tick",
		}),
		shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "shots_total",
			Help: "Shots fired by attacker and target type",
		}, []string{"attacker", "target", "destroyed"}),
		resourcesMined: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "resources_mined_total",
			Help: "Resource units extracted by mines",
		}, []string{"resource"}),
		buildingEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "building_events_total",
			Help: "Constructions started, completed and cancelled by building type",
		}, []string{"type", "event"}),
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "transfers_total",
			Help: "Units sent to sibling shards by destination and outcome",
		}, []string{"destination", "outcome"}),
	}
	if playerCount != nil {
		c.hasPlayersGauge = true
		c.playersGauge = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem,
			Name: "players",
			Help: "Players registered on the shard",
		}, func() float64 { return float64(playerCount()) })
	}
	return c
}

// Register registers all simulation metrics
func (c *SimulationMetricsCollector) Register(reg prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		c.unitsCreated, c.unitsDestroyed, c.combatTicks, c.combatants, c.shots,
		c.resourcesMined, c.buildingEvents, c.transfers,
	}
	if c.hasPlayersGauge {
		metrics = append(metrics, c.playersGauge)
	}
	return registerAll(reg, metrics...)
}

func (c *SimulationMetricsCollector) RecordUnitCreated(t unit.Type) {
	c.unitsCreated.WithLabelValues(string(t)).Inc()
}

func (c *SimulationMetricsCollector) RecordUnitDestroyed(t unit.Type) {
	c.unitsDestroyed.WithLabelValues(string(t)).Inc()
}

func (c *SimulationMetricsCollector) RecordBuildingEvent(t building.Type, event string) {
	c.buildingEvents.WithLabelValues(string(t), event).Inc()
}

func (c *SimulationMetricsCollector) RecordResourceMined(kind shared.ResourceKind) {
	c.resourcesMined.WithLabelValues(string(kind)).Inc()
}

func (c *SimulationMetricsCollector) RecordCombatTick(participants int) {
	c.combatTicks.Inc()
	c.combatants.Set(float64(participants))
}

func (c *SimulationMetricsCollector) RecordShot(attacker, target unit.Type, destroyed bool) {
	c.shots.WithLabelValues(string(attacker), string(target), strconv.FormatBool(destroyed)).Inc()
}

func (c *SimulationMetricsCollector) RecordTransfer(destination string, succeeded bool) {
	outcome := "failure"
	if succeeded {
		outcome = "success"
	}
	c.transfers.WithLabelValues(destination, outcome).Inc()
}
