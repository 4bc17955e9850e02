package unit

import (
	"fmt"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Damage is the health delta of one hit from this unit
func (u *Unit) Damage() int {
	return u.typ.Profile().Damage
}

// Shoot delivers this unit's hits to target. Non-combat units do nothing. It reports
// whether the target was destroyed by these hits.
func (u *Unit) Shoot(target *Unit) bool {
	profile := u.typ.Profile()
	if !profile.Combat {
		return false
	}
	destroyed := false
	for i := 0; i < profile.Shots; i++ {
		killed, err := target.GetShotAt(u)
		if err != nil {
			return destroyed
		}
		destroyed = destroyed || killed
	}
	return destroyed
}

// GetShotAt applies one hit from attacker. Bombers take a tenth of a cruiser's damage.
// Reaching zero health destroys the unit: it leaves its system and its owner releases
// it. Only combat units can be targeted.
func (u *Unit) GetShotAt(attacker *Unit) (bool, error) {
	if !u.typ.IsCombat() {
		return false, shared.NewIneligibleActorError(fmt.Sprintf("unit %s of type %s cannot be targeted", u.id, u.typ))
	}
	damage := attacker.Damage()
	if u.typ == Bomber && attacker.typ == Cruiser {
		damage /= 10
	}

	u.mu.Lock()
	u.health += damage
	dead := u.health <= 0 && !u.removed
	u.mu.Unlock()

	if !dead {
		return false, nil
	}
	if u.Detach() && u.owner != nil {
		u.owner.ReleaseUnit(u)
	}
	return true, nil
}
