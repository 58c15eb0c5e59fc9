package permission

import (
	"fmt"
	"strings"
)

// Role is a named set of grants. Each grant is either "*" or
// "object:action action ..." where an action may be "*".
type Role struct {
	id             string
	name           string
	description    string
	allowedActions []string
}

func NewRole(id, name, description string, allowedActions []string) (*Role, error) {
	if id == "" {
		return nil, fmt.Errorf("role id is required")
	}
	if len(id) > 50 {
		return nil, fmt.Errorf("role id too long (max 50 characters)")
	}
	if name == "" {
		name = id
	}
	r := &Role{
		id:             id,
		name:           name,
		description:    description,
		allowedActions: append([]string(nil), allowedActions...),
	}
	if _, err := r.Policies(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Role) ID() string          { return r.id }
func (r *Role) Name() string        { return r.name }
func (r *Role) Description() string { return r.description }

// Policies expands the grants into one policy per object/action pair.
func (r *Role) Policies() ([]Policy, error) {
	policies := make([]Policy, 0, len(r.allowedActions))
	for _, grant := range r.allowedActions {
		grant = strings.TrimSpace(grant)
		if grant == "*" {
			policies = append(policies, Policy{Role: r.id, Object: "*", Action: "*"})
			continue
		}

		object, actions, ok := strings.Cut(grant, ":")
		if !ok || object == "" {
			return nil, fmt.Errorf("role %s: invalid grant %q", r.id, grant)
		}
		fields := strings.Fields(actions)
		if len(fields) == 0 {
			return nil, fmt.Errorf("role %s: grant %q has no actions", r.id, grant)
		}
		for _, action := range fields {
			policies = append(policies, Policy{Role: r.id, Object: object, Action: action})
		}
	}
	return policies, nil
}
