package permission

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
)

//go:embed roles.yaml
var rolesYAML []byte

//go:embed model.conf
var modelConf string

type roleFile struct {
	Roles []struct {
		ID          string   `yaml:"id"`
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Allowed     []string `yaml:"allowed"`
	} `yaml:"roles"`
}

// DefaultRoles parses the embedded role table.
func DefaultRoles() ([]*permission.Role, error) {
	return ParseRoles(rolesYAML)
}

// ParseRoles decodes a role table in the embedded YAML layout.
func ParseRoles(data []byte) ([]*permission.Role, error) {
	var file roleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse role table: %w", err)
	}

	roles := make([]*permission.Role, 0, len(file.Roles))
	seen := make(map[string]struct{}, len(file.Roles))
	for _, r := range file.Roles {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate role %q", r.ID)
		}
		seen[r.ID] = struct{}{}

		role, err := permission.NewRole(r.ID, r.Name, r.Description, r.Allowed)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}
