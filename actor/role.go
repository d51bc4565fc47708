package actor

// Role is the closed set of actor variants.
type Role int

const (
	RoleObstacle Role = iota
	RoleGoodie
	RoleDestination
	RoleProjectile
	RoleEnemy
	RoleHero
)

func (r Role) String() string {
	switch r {
	case RoleHero:
		return "hero"
	case RoleEnemy:
		return "enemy"
	case RoleProjectile:
		return "projectile"
	case RoleObstacle:
		return "obstacle"
	case RoleGoodie:
		return "goodie"
	case RoleDestination:
		return "destination"
	default:
		return "unknown"
	}
}

// precedence orders collision participants. Zero means the role never
// drives a collision.
func (r Role) precedence() int {
	switch r {
	case RoleHero:
		return 3
	case RoleEnemy:
		return 2
	case RoleProjectile:
		return 1
	default:
		return 0
	}
}

// Side marks which face of a one-sided actor blocks motion.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideRight
	SideBottom
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	default:
		return "none"
	}
}

// ParseSide maps a name from level data to a Side. Unknown names yield
// SideNone.
func ParseSide(name string) Side {
	switch name {
	case "top":
		return SideTop
	case "right":
		return SideRight
	case "bottom":
		return SideBottom
	case "left":
		return SideLeft
	default:
		return SideNone
	}
}

// passes reports whether an actor moving at (vx, vy) goes through a
// one-sided actor blocking on side s. Coordinates are y-down, so a top
// sided platform lets things rise through it from below.
func (s Side) passes(vx, vy float64) bool {
	switch s {
	case SideTop:
		return vy < 0
	case SideRight:
		return vx > 0
	case SideBottom:
		return vy > 0
	case SideLeft:
		return vx < 0
	default:
		return false
	}
}
