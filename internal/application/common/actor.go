// Package common holds types shared by every application context.
package common

// Actor is the authenticated caller a use case runs on behalf of. Role is
// read from the user store per request.
type Actor struct {
	ID       uint
	Username string
	Fullname string
	Role     string
}

// PermissionChecker answers whether a role holds a capability.
type PermissionChecker interface {
	CanDo(role, capability string) bool
}

// Can reports whether the actor's role holds capability.
func (a Actor) Can(perms PermissionChecker, capability string) bool {
	return perms != nil && perms.CanDo(a.Role, capability)
}
