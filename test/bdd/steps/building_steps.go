package steps

import (
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	buildingCmd "github.com/andrescamacho/spaceshard-go/internal/application/building/commands"
	buildingQuery "github.com/andrescamacho/spaceshard-go/internal/application/building/queries"
	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

func registerBuildingSteps(sc *godog.ScenarioContext, c *shardContext) {
	sc.Step(`^"([^"]*)" builds a mine for (\w+) resources with "([^"]*)"$`, c.buildsMine)
	sc.Step(`^"([^"]*)" builds a starport with "([^"]*)"$`, c.buildsStarport)
	sc.Step(`^"([^"]*)" has a starport built by "([^"]*)"$`, c.hasStarport)
	sc.Step(`^the building should be under construction$`, c.buildingUnderConstruction)
	sc.Step(`^the building should be built$`, c.buildingBuilt)
	sc.Step(`^the building should no longer exist$`, c.buildingGone)
	sc.Step(`^"([^"]*)" orders an? (\w+) from the starport$`, c.ordersUnit)
	sc.Step(`^"([^"]*)" should own an? (\w+) on planet "([^"]*)" of system "([^"]*)"$`, c.shouldOwnTypeOnPlanet)
}

func (c *shardContext) build(owner, builder, typ, category string) {
	resp, err := c.send(asUser(owner), &buildingCmd.CreateBuildingCommand{
		PlayerID:         owner,
		BuilderID:        builder,
		Type:             typ,
		ResourceCategory: category,
	})
	if err != nil {
		return
	}
	c.lastBuilding = resp.(*buildingCmd.CreateBuildingResponse).Building
	c.builtBy = owner
}

func (c *shardContext) buildsMine(owner, category, builder string) error {
	c.build(owner, builder, "mine", category)
	return nil
}

func (c *shardContext) buildsStarport(owner, builder string) error {
	c.build(owner, builder, "starport", "")
	return nil
}

func (c *shardContext) hasStarport(owner, builder string) error {
	c.build(owner, builder, "starport", "")
	if c.lastErr != nil {
		return fmt.Errorf("failed to start the starport: %w", c.lastErr)
	}
	if eta := c.lastBuilding.EstimatedBuildTime; eta != nil {
		c.app.Scheduler.AdvanceTo(*eta)
	}
	return c.buildingBuilt()
}

// getBuilding queries the last started building. It must not be called within two
// seconds of completion: the query would wait on a clock nobody advances.
func (c *shardContext) getBuilding() (*common.BuildingView, error) {
	if c.lastBuilding == nil {
		return nil, fmt.Errorf("no building was started (last error: %v)", c.lastErr)
	}
	resp, err := c.app.Mediator.Send(asUser(c.builtBy), &buildingQuery.GetBuildingQuery{
		PlayerID:   c.builtBy,
		BuildingID: c.lastBuilding.ID,
	})
	if err != nil {
		return nil, err
	}
	return resp.(*buildingQuery.GetBuildingResponse).Building, nil
}

func (c *shardContext) buildingUnderConstruction() error {
	b, err := c.getBuilding()
	if err != nil {
		return err
	}
	if b.IsBuilt || b.EstimatedBuildTime == nil {
		return fmt.Errorf("expected building %s to be under construction", b.ID)
	}
	return nil
}

func (c *shardContext) buildingBuilt() error {
	b, err := c.getBuilding()
	if err != nil {
		return err
	}
	if !b.IsBuilt {
		return fmt.Errorf("expected building %s to be built", b.ID)
	}
	return nil
}

func (c *shardContext) buildingGone() error {
	_, err := c.getBuilding()
	if !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("expected the building to be gone, got %v", err)
	}
	return nil
}

func (c *shardContext) ordersUnit(owner, unitType string) error {
	if c.lastBuilding == nil {
		return fmt.Errorf("no starport was started")
	}
	c.send(asUser(owner), &buildingCmd.UseBuildingCommand{
		PlayerID:   owner,
		BuildingID: c.lastBuilding.ID,
		UnitType:   unitType,
	})
	return nil
}

func (c *shardContext) shouldOwnTypeOnPlanet(owner, unitType, planet, system string) error {
	resp, err := c.listUnits(owner)
	if err != nil {
		return err
	}
	for _, u := range resp.Units {
		if u.Type == unitType && u.System == system && u.Planet == planet {
			return nil
		}
	}
	return fmt.Errorf("%s owns no %s on %s/%s", owner, unitType, system, planet)
}
