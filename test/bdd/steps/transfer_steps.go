package steps

import (
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	transferQuery "github.com/andrescamacho/spaceshard-go/internal/application/transfer/queries"
	unitCmd "github.com/andrescamacho/spaceshard-go/internal/application/unit/commands"
	unitQuery "github.com/andrescamacho/spaceshard-go/internal/application/unit/queries"
)

func registerTransferSteps(sc *godog.ScenarioContext, c *shardContext) {
	sc.Step(`^sibling shard "([^"]*)" is unreachable$`, c.siblingIsUnreachable)
	sc.Step(`^"([^"]*)" sends "([^"]*)" to shard "([^"]*)"$`, c.sendsToShard)
	sc.Step(`^the unit should now be found at "([^"]*)"$`, c.unitFoundAt)
	sc.Step(`^the transfer should fail$`, c.transferShouldFail)
	sc.Step(`^the sibling shard should have unit "([^"]*)" of "([^"]*)" in system "([^"]*)"$`, c.siblingHasUnit)
	sc.Step(`^player "([^"]*)" on the sibling shard should hold:$`, c.siblingPlayerShouldHold)
	sc.Step(`^player "([^"]*)" on the sibling shard should own (\d+) units?$`, c.siblingPlayerOwns)
	sc.Step(`^the transfer log of "([^"]*)" should show (\d+) (successful|failed) transfers? to "([^"]*)"$`, c.transferLogShows)
}

func (c *shardContext) siblingIsUnreachable(name string) error {
	c.app.Gateway.Err = errors.New("dial tcp: connection refused")
	return nil
}

func (c *shardContext) sendsToShard(owner, id, shard string) error {
	resp, err := c.send(asUser(owner), &unitCmd.MoveUnitCommand{
		PlayerID:         owner,
		UnitID:           id,
		DestinationShard: shard,
	})
	if err == nil {
		c.redirect = resp.(*unitCmd.MoveUnitResponse).Redirect
	}
	return nil
}

func (c *shardContext) unitFoundAt(url string) error {
	if c.lastErr != nil {
		return fmt.Errorf("transfer failed: %w", c.lastErr)
	}
	if c.redirect != url {
		return fmt.Errorf("expected redirect to %s, got %q", url, c.redirect)
	}
	return nil
}

func (c *shardContext) transferShouldFail() error {
	if c.lastErr == nil {
		return fmt.Errorf("expected the transfer to fail, redirected to %s", c.redirect)
	}
	return nil
}

func (c *shardContext) siblingHasUnit(id, owner, system string) error {
	resp, err := c.sibling.Mediator.Send(asUser(owner), &unitQuery.GetUnitQuery{PlayerID: owner, UnitID: id})
	if err != nil {
		return fmt.Errorf("sibling shard: %w", err)
	}
	u := resp.(*unitQuery.GetUnitResponse).Unit
	if u.System != system {
		return fmt.Errorf("expected unit %s in %s on the sibling shard, got %s", id, system, u.System)
	}
	return nil
}

func (c *shardContext) siblingPlayerShouldHold(id string, table *godog.Table) error {
	expected, err := quantitiesFromTable(table)
	if err != nil {
		return err
	}
	actual, err := holdings(c.sibling.Mediator, id)
	if err != nil {
		return fmt.Errorf("sibling shard: %w", err)
	}
	return compareQuantities(expected, actual)
}

func (c *shardContext) siblingPlayerOwns(id string, n int) error {
	resp, err := c.sibling.Mediator.Send(asUser(id), &unitQuery.ListUnitsQuery{PlayerID: id})
	if err != nil {
		return fmt.Errorf("sibling shard: %w", err)
	}
	if got := len(resp.(*unitQuery.ListUnitsResponse).Units); got != n {
		return fmt.Errorf("expected %d units on the sibling shard, got %d", n, got)
	}
	return nil
}

func (c *shardContext) transferLogShows(owner string, n int, outcome, shard string) error {
	resp, err := c.app.Mediator.Send(asUser(owner), &transferQuery.ListTransfersQuery{PlayerID: owner})
	if err != nil {
		return err
	}
	count := 0
	for _, r := range resp.(*transferQuery.ListTransfersResponse).Transfers {
		if r.Destination == shard && r.Succeeded == (outcome == "successful") {
			count++
		}
	}
	if count != n {
		return fmt.Errorf("expected %d %s transfers to %s, got %d", n, outcome, shard, count)
	}
	return nil
}
