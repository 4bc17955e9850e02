package galaxy

import "fmt"

// Wormhole links a local system to a sibling shard. Name is the destination shard name.
type Wormhole struct {
	Name           string
	BaseURI        string
	System         string
	User           string
	SharedPassword string
}

// UnitURL is where the destination shard serves a transferred unit
func (w *Wormhole) UnitURL(playerID, unitID string) string {
	return fmt.Sprintf("%s/users/%s/units/%s", w.BaseURI, playerID, unitID)
}

// Credentials returns the Basic-auth pair this shard presents to the destination
func (w *Wormhole) Credentials() (user, password string) {
	return "shard-" + w.User, w.SharedPassword
}
