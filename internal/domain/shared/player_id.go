package shared

import "regexp"

var playerIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// PlayerID is a value object for a player identifier made of letters, digits, '_' and '-'
type PlayerID struct {
	value string
}

// NewPlayerID validates the identifier
func NewPlayerID(id string) (PlayerID, error) {
	if !playerIDPattern.MatchString(id) {
		return PlayerID{}, NewInvalidIdentifierError(id)
	}
	return PlayerID{value: id}, nil
}

// MustNewPlayerID panics on an invalid identifier; use only with trusted literals
func MustNewPlayerID(id string) PlayerID {
	playerID, err := NewPlayerID(id)
	if err != nil {
		panic(err)
	}
	return playerID
}

func (p PlayerID) String() string {
	return p.value
}

func (p PlayerID) Equals(other PlayerID) bool {
	return p.value == other.value
}

func (p PlayerID) IsZero() bool {
	return p.value == ""
}
