package steps

import (
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	unitCmd "github.com/andrescamacho/spaceshard-go/internal/application/unit/commands"
	unitQuery "github.com/andrescamacho/spaceshard-go/internal/application/unit/queries"
	"github.com/andrescamacho/spaceshard-go/internal/application/common"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/test/helpers"
)

func registerUnitSteps(sc *godog.ScenarioContext, c *shardContext) {
	sc.Step(`^"([^"]*)" has an? (\w+) "([^"]*)" in system "([^"]*)"$`, c.hasUnitInSystem)
	sc.Step(`^"([^"]*)" has an? (\w+) "([^"]*)" on planet "([^"]*)" of system "([^"]*)"$`, c.hasUnitOnPlanet)
	sc.Step(`^"([^"]*)" tries to create a (\w+) "([^"]*)" in system "([^"]*)"$`, c.userTriesToCreateUnit)
	sc.Step(`^an anonymous caller tries to create a (\w+) "([^"]*)" for "([^"]*)"$`, c.anonymousTriesToCreateUnit)
	sc.Step(`^"([^"]*)" moves "([^"]*)" to planet "([^"]*)" of system "([^"]*)"$`, c.movesToPlanet)
	sc.Step(`^"([^"]*)" moves "([^"]*)" to system "([^"]*)"$`, c.movesToSystem)
	sc.Step(`^the estimated time of arrival should be (\d+) seconds from now$`, c.etaShouldBe)
	sc.Step(`^unit "([^"]*)" of "([^"]*)" should be in system "([^"]*)" in open space$`, c.unitShouldBeInOpenSpace)
	sc.Step(`^unit "([^"]*)" of "([^"]*)" should be on planet "([^"]*)" of system "([^"]*)"$`, c.unitShouldBeOnPlanet)
	sc.Step(`^unit "([^"]*)" of "([^"]*)" should be travelling$`, c.unitShouldBeTravelling)
	sc.Step(`^unit "([^"]*)" of "([^"]*)" should not be travelling$`, c.unitShouldNotBeTravelling)
	sc.Step(`^unit "([^"]*)" of "([^"]*)" should have health (\d+)$`, c.unitShouldHaveHealth)
	sc.Step(`^unit "([^"]*)" of "([^"]*)" should be destroyed$`, c.unitShouldBeGone)
	sc.Step(`^"([^"]*)" should no longer own unit "([^"]*)"$`, c.shouldNoLongerOwn)
	sc.Step(`^"([^"]*)" should see the deposit of "([^"]*)" from "([^"]*)":$`, c.shouldSeeDeposit)
	sc.Step(`^"([^"]*)" should see no deposit from "([^"]*)"$`, c.shouldSeeNoDeposit)
}

func (c *shardContext) createUnit(owner, typ, id, system, planet string) error {
	resp, err := c.send(helpers.AsAdmin(), &unitCmd.CreateUnitCommand{
		PlayerID: owner,
		UnitID:   id,
		Type:     typ,
		System:   system,
		Planet:   planet,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s %s: %w", typ, id, err)
	}
	c.lastUnit = resp.(*unitCmd.CreateUnitResponse).Unit
	return nil
}

func (c *shardContext) hasUnitInSystem(owner, typ, id, system string) error {
	return c.createUnit(owner, typ, id, system, "")
}

func (c *shardContext) hasUnitOnPlanet(owner, typ, id, planet, system string) error {
	return c.createUnit(owner, typ, id, system, planet)
}

func (c *shardContext) userTriesToCreateUnit(owner, typ, id, system string) error {
	c.send(asUser(owner), &unitCmd.CreateUnitCommand{PlayerID: owner, UnitID: id, Type: typ, System: system})
	return nil
}

func (c *shardContext) anonymousTriesToCreateUnit(typ, id, owner string) error {
	c.send(helpers.As(shared.RoleUnauthenticated, ""), &unitCmd.CreateUnitCommand{PlayerID: owner, UnitID: id, Type: typ})
	return nil
}

func (c *shardContext) move(owner, id, system, planet string) error {
	resp, err := c.send(asUser(owner), &unitCmd.MoveUnitCommand{
		PlayerID: owner,
		UnitID:   id,
		System:   system,
		Planet:   planet,
	})
	if err != nil {
		return nil
	}
	c.lastUnit = resp.(*unitCmd.MoveUnitResponse).Unit
	return nil
}

func (c *shardContext) movesToPlanet(owner, id, planet, system string) error {
	return c.move(owner, id, system, planet)
}

func (c *shardContext) movesToSystem(owner, id, system string) error {
	return c.move(owner, id, system, "")
}

func (c *shardContext) etaShouldBe(seconds int) error {
	if c.lastErr != nil {
		return fmt.Errorf("move failed: %w", c.lastErr)
	}
	if c.lastUnit == nil || c.lastUnit.EstimatedTimeOfArrival == nil {
		return fmt.Errorf("unit has no estimated time of arrival")
	}
	got := c.lastUnit.EstimatedTimeOfArrival.Sub(c.app.Scheduler.Now())
	if want := time.Duration(seconds) * time.Second; got != want {
		return fmt.Errorf("expected arrival in %v, got %v", want, got)
	}
	return nil
}

func (c *shardContext) getUnit(owner, id string) (*common.UnitView, error) {
	resp, err := c.app.Mediator.Send(asUser(owner), &unitQuery.GetUnitQuery{PlayerID: owner, UnitID: id})
	if err != nil {
		return nil, err
	}
	return resp.(*unitQuery.GetUnitResponse).Unit, nil
}

func (c *shardContext) unitShouldBeInOpenSpace(id, owner, system string) error {
	u, err := c.getUnit(owner, id)
	if err != nil {
		return err
	}
	if u.System != system || u.Planet != "" {
		return fmt.Errorf("expected unit %s in open space of %s, got %s/%s", id, system, u.System, u.Planet)
	}
	return nil
}

func (c *shardContext) unitShouldBeOnPlanet(id, owner, planet, system string) error {
	u, err := c.getUnit(owner, id)
	if err != nil {
		return err
	}
	if u.System != system || u.Planet != planet {
		return fmt.Errorf("expected unit %s on %s/%s, got %s/%s", id, system, planet, u.System, u.Planet)
	}
	return nil
}

func (c *shardContext) unitShouldBeTravelling(id, owner string) error {
	u, err := c.getUnit(owner, id)
	if err != nil {
		return err
	}
	if u.EstimatedTimeOfArrival == nil {
		return fmt.Errorf("expected unit %s to be travelling", id)
	}
	return nil
}

func (c *shardContext) unitShouldNotBeTravelling(id, owner string) error {
	u, err := c.getUnit(owner, id)
	if err != nil {
		return err
	}
	if u.EstimatedTimeOfArrival != nil {
		return fmt.Errorf("expected unit %s to have arrived, ETA %v", id, u.EstimatedTimeOfArrival)
	}
	return nil
}

func (c *shardContext) unitShouldHaveHealth(id, owner string, health int) error {
	u, err := c.getUnit(owner, id)
	if err != nil {
		return err
	}
	if u.Health != health {
		return fmt.Errorf("expected unit %s to have health %d, got %d", id, health, u.Health)
	}
	return nil
}

func (c *shardContext) unitShouldBeGone(id, owner string) error {
	_, err := c.getUnit(owner, id)
	if !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("expected unit %s to be gone, got %v", id, err)
	}
	return nil
}

func (c *shardContext) shouldNoLongerOwn(owner, id string) error {
	return c.unitShouldBeGone(id, owner)
}

func (c *shardContext) location(owner, id string) (*common.LocationView, error) {
	resp, err := c.app.Mediator.Send(asUser(owner), &unitQuery.GetUnitLocationQuery{PlayerID: owner, UnitID: id})
	if err != nil {
		return nil, err
	}
	return resp.(*unitQuery.GetUnitLocationResponse).Location, nil
}

func (c *shardContext) shouldSeeDeposit(owner, planet, id string, table *godog.Table) error {
	expected, err := quantitiesFromTable(table)
	if err != nil {
		return err
	}
	loc, err := c.location(owner, id)
	if err != nil {
		return err
	}
	if loc.Planet != planet {
		return fmt.Errorf("unit %s stands on %q, not %s", id, loc.Planet, planet)
	}
	return compareQuantities(expected, loc.ResourcesQuantity)
}

func (c *shardContext) shouldSeeNoDeposit(owner, id string) error {
	loc, err := c.location(owner, id)
	if err != nil {
		return err
	}
	if len(loc.ResourcesQuantity) != 0 {
		return fmt.Errorf("expected no deposit, got %v", loc.ResourcesQuantity)
	}
	return nil
}
