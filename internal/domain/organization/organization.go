package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/orris-inc/helpdesk/internal/domain/shared"
)

var ErrOrganizationNotFound = errors.New("organization not found")

type Organization struct {
	id        uint
	name      string
	shortName string
	members   []uint
}

func NewOrganization(name, shortName string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("organization name is required")
	}
	shortName = strings.ToLower(strings.TrimSpace(shortName))
	if shortName == "" {
		return nil, fmt.Errorf("organization short name is required")
	}
	if strings.ContainsAny(shortName, " /") {
		return nil, fmt.Errorf("organization short name must not contain spaces or slashes")
	}
	return &Organization{name: name, shortName: shortName, members: []uint{}}, nil
}

func ReconstructOrganization(id uint, name, shortName string, members []uint) *Organization {
	return &Organization{id: id, name: name, shortName: shortName, members: shared.CopyIDs(members)}
}

func (o *Organization) ID() uint          { return o.id }
func (o *Organization) Name() string      { return o.name }
func (o *Organization) ShortName() string { return o.shortName }
func (o *Organization) Members() []uint   { return shared.CopyIDs(o.members) }

func (o *Organization) SetID(id uint) {
	o.id = id
}

func (o *Organization) AddMember(userID uint) bool {
	var added bool
	o.members, added = shared.AddID(o.members, userID)
	return added
}

func (o *Organization) RemoveMember(userID uint) bool {
	var removed bool
	o.members, removed = shared.RemoveID(o.members, userID)
	return removed
}

type Repository interface {
	Create(ctx context.Context, o *Organization) error
	Update(ctx context.Context, o *Organization) error
	GetByID(ctx context.Context, id uint) (*Organization, error)
	List(ctx context.Context) ([]*Organization, error)
}
