// Package permission exposes the role table to the API.
package permission

import (
	"sort"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type RoleView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Capabilities []string `json:"capabilities"`
}

// Service lists roles and what each can do.
type Service struct {
	roles   []*permission.Role
	checker permission.Checker
	logger  logger.Interface
}

func NewService(roles []*permission.Role, checker permission.Checker, logger logger.Interface) *Service {
	return &Service{
		roles:   roles,
		checker: checker,
		logger:  logger,
	}
}

// ListRoles expands wildcard grants through the checker, so the result
// matches what requests are actually allowed to do.
func (s *Service) ListRoles() []RoleView {
	out := make([]RoleView, 0, len(s.roles))
	for _, r := range s.roles {
		caps := make([]string, 0)
		for _, c := range permission.AllCapabilities {
			if s.checker.CanDo(r.ID(), c) {
				caps = append(caps, c)
			}
		}
		sort.Strings(caps)
		out = append(out, RoleView{
			ID:           r.ID(),
			Name:         r.Name(),
			Description:  r.Description(),
			Capabilities: caps,
		})
	}
	return out
}

func (s *Service) CanDo(role, capability string) bool {
	return s.checker.CanDo(role, capability)
}
