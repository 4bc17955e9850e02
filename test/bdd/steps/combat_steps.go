package steps

import (
	"context"

	"github.com/cucumber/godog"
)

func registerCombatSteps(sc *godog.ScenarioContext, c *shardContext) {
	sc.Step(`^the combat organiser is running$`, c.combatIsRunning)
}

func (c *shardContext) combatIsRunning() error {
	c.app.Combat.Start(context.Background())
	return nil
}
