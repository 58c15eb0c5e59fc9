package permission

import (
	"fmt"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var _ permission.Checker = (*Checker)(nil)

// Checker answers capability questions against an enforcer. Errors are
// logged and treated as a denial.
type Checker struct {
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewChecker(enforcer permission.PermissionEnforcer, log logger.Interface) *Checker {
	return &Checker{enforcer: enforcer, logger: log}
}

func (c *Checker) CanDo(role, capability string) bool {
	object, action, err := permission.ParseCapability(capability)
	if err != nil {
		c.logger.Warnw("malformed capability", "capability", capability, "error", err)
		return false
	}
	allowed, err := c.enforcer.Enforce(role, object, action)
	if err != nil {
		return false
	}
	return allowed
}

// InitRolePolicies makes the enforcer hold exactly the grants of roles.
func InitRolePolicies(enforcer permission.PermissionEnforcer, roles []*permission.Role, log logger.Interface) error {
	all := make([]permission.Policy, 0)
	for _, role := range roles {
		policies, err := role.Policies()
		if err != nil {
			return fmt.Errorf("failed to expand role %s: %w", role.ID(), err)
		}
		all = append(all, policies...)
	}

	if err := enforcer.SyncPolicies(all); err != nil {
		return err
	}

	log.Infow("role policies initialized", "roles", len(roles), "policies", len(all))
	return nil
}

// NewDefaultChecker builds an in-memory enforcer seeded with the embedded
// role table.
func NewDefaultChecker(log logger.Interface) (*Checker, error) {
	enforcer, err := NewEnforcer(nil, log)
	if err != nil {
		return nil, err
	}
	roles, err := DefaultRoles()
	if err != nil {
		return nil, err
	}
	if err := InitRolePolicies(enforcer, roles, log); err != nil {
		return nil, err
	}
	return NewChecker(enforcer, log), nil
}
