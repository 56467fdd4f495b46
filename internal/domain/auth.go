package domain

// Role differentiates student and admin sessions.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a raw role value.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleStudent, RoleAdmin:
		return Role(raw), true
	}
	return "", false
}
