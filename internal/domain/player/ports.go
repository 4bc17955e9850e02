package player

import "context"

// Repository holds the authoritative set of players of the shard
type Repository interface {
	FindByID(ctx context.Context, playerID string) (*Player, error)
	Add(ctx context.Context, player *Player) error
	List(ctx context.Context) ([]*Player, error)
}
