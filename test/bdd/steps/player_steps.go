package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/spaceshard-go/internal/application/mediator"
	playerCmd "github.com/andrescamacho/spaceshard-go/internal/application/player/commands"
	playerQuery "github.com/andrescamacho/spaceshard-go/internal/application/player/queries"
	unitQuery "github.com/andrescamacho/spaceshard-go/internal/application/unit/queries"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/test/helpers"
)

func registerPlayerSteps(sc *godog.ScenarioContext, c *shardContext) {
	sc.Step(`^player "([^"]*)" is registered$`, c.playerIsRegistered)
	sc.Step(`^"([^"]*)" registers$`, c.registers)
	sc.Step(`^"([^"]*)" holds:$`, c.adminSetsResources)
	sc.Step(`^the admin sets the resources of "([^"]*)" to:$`, c.adminSetsResources)
	sc.Step(`^"([^"]*)" sets their own resources to:$`, c.userSetsResources)
	sc.Step(`^player "([^"]*)" should hold:$`, c.playerShouldHold)
	sc.Step(`^player "([^"]*)" should own (\d+) units?$`, c.playerShouldOwnUnits)
	sc.Step(`^player "([^"]*)" should own a (\w+) and a (\w+)$`, c.playerShouldOwnTypes)
	sc.Step(`^all units of "([^"]*)" should be in the same system in open space$`, c.allUnitsInSameSystem)
}

// asUser is the context of a regular player acting for themselves
func asUser(id string) context.Context {
	return helpers.As(shared.RoleUser, id)
}

func (c *shardContext) send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	resp, err := c.app.Mediator.Send(ctx, request)
	c.lastErr = err
	return resp, err
}

func (c *shardContext) playerIsRegistered(id string) error {
	if _, err := c.send(asUser(id), &playerCmd.RegisterPlayerCommand{PlayerID: id, Pseudo: id}); err != nil {
		return fmt.Errorf("failed to register %s: %w", id, err)
	}
	return nil
}

func (c *shardContext) registers(id string) error {
	c.send(asUser(id), &playerCmd.RegisterPlayerCommand{PlayerID: id, Pseudo: id})
	return nil
}

func (c *shardContext) adminSetsResources(id string, table *godog.Table) error {
	quantities, err := quantitiesFromTable(table)
	if err != nil {
		return err
	}
	if _, err := c.send(helpers.AsAdmin(), &playerCmd.RegisterPlayerCommand{PlayerID: id, Resources: quantities}); err != nil {
		return fmt.Errorf("failed to set resources of %s: %w", id, err)
	}
	return nil
}

func (c *shardContext) userSetsResources(id string, table *godog.Table) error {
	quantities, err := quantitiesFromTable(table)
	if err != nil {
		return err
	}
	c.send(asUser(id), &playerCmd.RegisterPlayerCommand{PlayerID: id, Resources: quantities})
	return nil
}

func holdings(m mediator.Mediator, id string) (map[string]int, error) {
	resp, err := m.Send(asUser(id), &playerQuery.GetPlayerQuery{PlayerID: id})
	if err != nil {
		return nil, err
	}
	return resp.(*playerQuery.GetPlayerResponse).Player.ResourcesQuantity, nil
}

func (c *shardContext) playerShouldHold(id string, table *godog.Table) error {
	expected, err := quantitiesFromTable(table)
	if err != nil {
		return err
	}
	actual, err := holdings(c.app.Mediator, id)
	if err != nil {
		return err
	}
	return compareQuantities(expected, actual)
}

func (c *shardContext) listUnits(id string) (*unitQuery.ListUnitsResponse, error) {
	resp, err := c.app.Mediator.Send(asUser(id), &unitQuery.ListUnitsQuery{PlayerID: id})
	if err != nil {
		return nil, err
	}
	return resp.(*unitQuery.ListUnitsResponse), nil
}

func (c *shardContext) playerShouldOwnUnits(id string, n int) error {
	resp, err := c.listUnits(id)
	if err != nil {
		return err
	}
	if len(resp.Units) != n {
		return fmt.Errorf("expected %d units, got %d", n, len(resp.Units))
	}
	return nil
}

func (c *shardContext) playerShouldOwnTypes(id, first, second string) error {
	resp, err := c.listUnits(id)
	if err != nil {
		return err
	}
	types := make(map[string]int)
	for _, u := range resp.Units {
		types[u.Type]++
	}
	for _, want := range []string{first, second} {
		if types[want] == 0 {
			return fmt.Errorf("expected a %s among %v", want, types)
		}
	}
	return nil
}

func (c *shardContext) allUnitsInSameSystem(id string) error {
	resp, err := c.listUnits(id)
	if err != nil {
		return err
	}
	if len(resp.Units) == 0 {
		return fmt.Errorf("player %s has no units", id)
	}
	system := resp.Units[0].System
	for _, u := range resp.Units {
		if u.System != system {
			return fmt.Errorf("unit %s is in %s, expected %s", u.ID, u.System, system)
		}
		if u.Planet != "" {
			return fmt.Errorf("unit %s is on planet %s, expected open space", u.ID, u.Planet)
		}
	}
	return nil
}
