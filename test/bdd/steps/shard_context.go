package steps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/test/helpers"
)

// scenarioT lets the test helpers run inside a godog scenario. Fatalf panics; godog
// reports the panic as a failed step.
type scenarioT struct {
	cleanups []func()
}

func (t *scenarioT) Helper() {}

func (t *scenarioT) Fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func (t *scenarioT) Cleanup(fn func()) {
	t.cleanups = append(t.cleanups, fn)
}

func (t *scenarioT) runCleanups() {
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		t.cleanups[i]()
	}
	t.cleanups = nil
}

// shardContext holds the state of one scenario: the shard under test, an optional
// sibling shard, and the outcome of the last request
type shardContext struct {
	t       *scenarioT
	app     *helpers.TestApp
	sibling *helpers.TestApp

	lastErr      error
	lastUnit     *common.UnitView
	lastBuilding *common.BuildingView
	builtBy      string
	redirect     string
}

func (c *shardContext) reset() {
	if c.t != nil {
		c.t.runCleanups()
	}
	c.t = &scenarioT{}
	c.app = nil
	c.sibling = nil
	c.lastErr = nil
	c.lastUnit = nil
	c.lastBuilding = nil
	c.builtBy = ""
	c.redirect = ""
}

// InitializeShardScenario registers every shard step definition
func InitializeShardScenario(sc *godog.ScenarioContext) {
	c := &shardContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})
	sc.After(func(ctx context.Context, s *godog.Scenario, err error) (context.Context, error) {
		if c.app != nil {
			c.app.Combat.Stop()
		}
		c.t.runCleanups()
		return ctx, nil
	})

	sc.Step(`^a shard with the test sector$`, c.aShardWithTheTestSector)
	sc.Step(`^a shard linked to sibling shard "([^"]*)" through system "([^"]*)"$`, c.aShardLinkedToSiblingShard)
	sc.Step(`^(\d+) (second|seconds|minute|minutes) pass(?:es)?$`, c.timePasses)
	sc.Step(`^the request should fail with "([^"]*)"$`, c.theRequestShouldFailWith)
	sc.Step(`^the request should succeed$`, c.theRequestShouldSucceed)

	registerPlayerSteps(sc, c)
	registerUnitSteps(sc, c)
	registerBuildingSteps(sc, c)
	registerCombatSteps(sc, c)
	registerTransferSteps(sc, c)
}

func (c *shardContext) aShardWithTheTestSector() error {
	c.app = helpers.NewTestApp(c.t)
	return nil
}

func (c *shardContext) aShardLinkedToSiblingShard(name, system string) error {
	c.app = helpers.NewTestApp(c.t, galaxy.Wormhole{
		Name:           name,
		BaseURI:        "http://" + name + ".test",
		System:         system,
		User:           "east",
		SharedPassword: "shared-secret",
	})
	c.sibling = helpers.NewTestApp(c.t)
	c.app.Gateway.Remote = c.sibling.Mediator
	return nil
}

func (c *shardContext) timePasses(n int, unit string) error {
	d := time.Duration(n) * time.Second
	if unit == "minute" || unit == "minutes" {
		d = time.Duration(n) * time.Minute
	}
	c.app.Scheduler.Advance(d)
	return nil
}

func (c *shardContext) theRequestShouldFailWith(kind string) error {
	if c.lastErr == nil {
		return fmt.Errorf("expected a %s error, got success", kind)
	}
	if got := string(shared.KindOf(c.lastErr)); got != kind {
		return fmt.Errorf("expected a %s error, got %q: %v", kind, got, c.lastErr)
	}
	return nil
}

func (c *shardContext) theRequestShouldSucceed() error {
	if c.lastErr != nil {
		return fmt.Errorf("expected success, got: %v", c.lastErr)
	}
	return nil
}

// quantitiesFromTable reads a two-column resource | quantity table
func quantitiesFromTable(table *godog.Table) (map[string]int, error) {
	out := make(map[string]int)
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		name := cellValue(table, row, "resource")
		n, err := strconv.Atoi(cellValue(table, row, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid quantity: %w", i, err)
		}
		out[name] = n
	}
	return out, nil
}

// cellValue gets a cell value from a table row by column name, using the first row as
// the header
func cellValue(table *godog.Table, row *messages.PickleTableRow, column string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, header := range table.Rows[0].Cells {
		if header.Value == column && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

// compareQuantities checks every expected resource against actual
func compareQuantities(expected, actual map[string]int) error {
	for name, want := range expected {
		if got := actual[name]; got != want {
			return fmt.Errorf("expected %d %s, got %d (holdings: %v)", want, name, got, actual)
		}
	}
	return nil
}
