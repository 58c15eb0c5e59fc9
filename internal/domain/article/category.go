package article

import (
	"fmt"
	"strings"
)

// Category groups articles inside an organization.
type Category struct {
	id        uint
	name      string
	orgID     uint
	createdBy uint
	isDefault bool
}

func NewCategory(name string, orgID, createdBy uint, isDefault bool) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if orgID == 0 {
		return nil, fmt.Errorf("organization is required")
	}
	return &Category{name: name, orgID: orgID, createdBy: createdBy, isDefault: isDefault}, nil
}

func ReconstructCategory(id uint, name string, orgID, createdBy uint, isDefault bool) *Category {
	return &Category{id: id, name: name, orgID: orgID, createdBy: createdBy, isDefault: isDefault}
}

func (c *Category) ID() uint        { return c.id }
func (c *Category) Name() string    { return c.name }
func (c *Category) OrgID() uint     { return c.orgID }
func (c *Category) CreatedBy() uint { return c.createdBy }
func (c *Category) IsDefault() bool { return c.isDefault }

func (c *Category) SetID(id uint) {
	c.id = id
}
