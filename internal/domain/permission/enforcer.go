package permission

// PermissionEnforcer evaluates role policies.
type PermissionEnforcer interface {
	Enforce(role string, object string, action string) (bool, error)
	// SyncPolicies replaces the whole policy set, stored copy included.
	SyncPolicies(policies []Policy) error
}
