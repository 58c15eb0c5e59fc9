package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

var _ permission.PermissionEnforcer = (*Enforcer)(nil)

type Enforcer struct {
	enforcer *casbin.Enforcer
	persist  bool
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds a casbin enforcer from the embedded model. With a
// database the policies are stored through the gorm adapter; without one
// they live in memory only.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
		if err := enforcer.LoadPolicy(); err != nil {
			return nil, fmt.Errorf("failed to load policy: %w", err)
		}
		// SyncPolicies rewrites the table in one SavePolicy call.
		enforcer.EnableAutoSave(false)
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
	}

	return &Enforcer{
		enforcer: enforcer,
		persist:  db != nil,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role string, object string, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, object, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "object", object, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// SyncPolicies drops every loaded policy and installs the given set. With a
// database the casbin_rule table is rewritten to match, so grants removed
// from the role table stop applying after a restart.
func (e *Enforcer) SyncPolicies(policies []permission.Policy) error {
	rules := make([][]string, 0, len(policies))
	seen := make(map[permission.Policy]struct{}, len(policies))
	for _, p := range policies {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		rules = append(rules, []string{p.Role, p.Object, p.Action})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.enforcer.ClearPolicy()
	if len(rules) > 0 {
		if _, err := e.enforcer.AddPolicies(rules); err != nil {
			e.logger.Errorw("failed to add policies", "error", err, "count", len(rules))
			return fmt.Errorf("failed to add policies: %w", err)
		}
	}

	if !e.persist {
		return nil
	}
	if err := e.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to save policies: %w", err)
	}
	return nil
}
