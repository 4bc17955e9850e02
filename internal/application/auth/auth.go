package auth

import (
	"context"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

type authContextKey int

const (
	callerKey authContextKey = iota + 1000 // offset from logger keys
)

// Caller identifies who issued a request, as resolved by the transport layer
type Caller struct {
	Username string
	Role     shared.Role
}

// WithCaller injects the caller into the context
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext returns the caller, or an unauthenticated one when absent
func CallerFromContext(ctx context.Context) Caller {
	if caller, ok := ctx.Value(callerKey).(Caller); ok {
		return caller
	}
	return Caller{Role: shared.RoleUnauthenticated}
}

// RequireElevated fails unless the caller is an admin or a sibling shard
func RequireElevated(ctx context.Context, action string) error {
	switch CallerFromContext(ctx).Role {
	case shared.RoleAdmin, shared.RoleShard:
		return nil
	case shared.RoleUnauthenticated:
		return shared.NewUnauthenticatedError("you must be logged in to " + action)
	default:
		return shared.NewForbiddenError("your role does not allow you to " + action)
	}
}

// Credentials are the username/password pairs the shard recognises
type Credentials struct {
	AdminUser      string
	AdminPassword  string
	SharedPassword string
	// KnownShards restricts which sibling shard names are accepted; empty accepts any
	KnownShards []string
}

// ResolveRole maps Basic-auth credentials to a role. ok is false when no credentials
// were presented.
func (c Credentials) ResolveRole(username, password string, ok bool) Caller {
	if !ok {
		return Caller{Role: shared.RoleUnauthenticated}
	}
	if username == c.AdminUser && password == c.AdminPassword {
		return Caller{Username: username, Role: shared.RoleAdmin}
	}
	if name, isShard := shardName(username); isShard && password == c.SharedPassword && c.knows(name) {
		return Caller{Username: username, Role: shared.RoleShard}
	}
	return Caller{Username: username, Role: shared.RoleUser}
}

func (c Credentials) knows(name string) bool {
	if len(c.KnownShards) == 0 {
		return true
	}
	for _, known := range c.KnownShards {
		if known == name {
			return true
		}
	}
	return false
}

func shardName(username string) (string, bool) {
	const prefix = "shard-"
	if len(username) <= len(prefix) || username[:len(prefix)] != prefix {
		return "", false
	}
	return username[len(prefix):], true
}
