package shared

// Role is the authenticated caller's role, resolved by the transport layer
type Role int

const (
	RoleUnauthenticated Role = iota
	RoleUser
	RoleShard
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleShard:
		return "shard"
	case RoleAdmin:
		return "admin"
	default:
		return "unauthenticated"
	}
}

// Elevated reports whether the role may create units and overwrite resources
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleShard
}
