package group

import (
	"errors"
	"fmt"
	"strings"

	"github.com/orris-inc/helpdesk/internal/domain/shared"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrGroupInUse    = errors.New("group still has tickets")
)

// Group is a ticket visibility scope.
type Group struct {
	id         uint
	name       string
	members    []uint
	sendMailTo []uint
	public     bool
	orgID      *uint
}

func NewGroup(name string, orgID *uint) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("group name too long (max 100 characters)")
	}
	return &Group{
		name:       name,
		members:    []uint{},
		sendMailTo: []uint{},
		orgID:      orgID,
	}, nil
}

func ReconstructGroup(id uint, name string, members, sendMailTo []uint, public bool, orgID *uint) *Group {
	return &Group{
		id:         id,
		name:       name,
		members:    shared.CopyIDs(members),
		sendMailTo: shared.CopyIDs(sendMailTo),
		public:     public,
		orgID:      orgID,
	}
}

func (g *Group) ID() uint           { return g.id }
func (g *Group) Name() string       { return g.name }
func (g *Group) Members() []uint    { return shared.CopyIDs(g.members) }
func (g *Group) SendMailTo() []uint { return shared.CopyIDs(g.sendMailTo) }
func (g *Group) IsPublic() bool     { return g.public }
func (g *Group) OrgID() *uint       { return g.orgID }

func (g *Group) SetID(id uint) {
	g.id = id
}

func (g *Group) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("group name is required")
	}
	g.name = name
	return nil
}

func (g *Group) AddMember(userID uint) bool {
	var added bool
	g.members, added = shared.AddID(g.members, userID)
	return added
}

// RemoveMember also drops the user from the mail targets.
func (g *Group) RemoveMember(userID uint) bool {
	var removed bool
	g.members, removed = shared.RemoveID(g.members, userID)
	g.sendMailTo, _ = shared.RemoveID(g.sendMailTo, userID)
	return removed
}

func (g *Group) IsMember(userID uint) bool {
	return shared.HasID(g.members, userID)
}

// SetSendMailTo keeps only ids that are members.
func (g *Group) SetSendMailTo(userIDs []uint) {
	targets := make([]uint, 0, len(userIDs))
	for _, id := range userIDs {
		if g.IsMember(id) {
			targets, _ = shared.AddID(targets, id)
		}
	}
	g.sendMailTo = targets
}

func (g *Group) SetPublic(public bool) {
	g.public = public
}
