// Package system catalogues the systems an organization raises tickets
// against.
package system

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

var (
	ErrSystemNotFound = errors.New("system not found")
	ErrSystemExists   = errors.New("system name already used in organization")
	// ErrSystemInUse blocks deleting a system that live tickets still name.
	ErrSystemInUse = errors.New("system has tickets")
)

type System struct {
	id          uint
	name        string
	kind        string
	description string
	active      bool
	orgID       uint
	created     time.Time
	edited      *time.Time
}

// NewSystem builds an active system owned by orgID.
func NewSystem(orgID uint, name, kind, description string) (*System, error) {
	if orgID == 0 {
		return nil, fmt.Errorf("system organization is required")
	}
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	return &System{
		name:        name,
		kind:        strings.TrimSpace(kind),
		description: strings.TrimSpace(description),
		active:      true,
		orgID:       orgID,
		created:     biztime.NowUTC(),
	}, nil
}

func ReconstructSystem(
	id uint,
	name, kind, description string,
	active bool,
	orgID uint,
	created time.Time,
	edited *time.Time,
) *System {
	return &System{
		id:          id,
		name:        name,
		kind:        kind,
		description: description,
		active:      active,
		orgID:       orgID,
		created:     created,
		edited:      edited,
	}
}

func (s *System) ID() uint            { return s.id }
func (s *System) Name() string        { return s.name }
func (s *System) Kind() string        { return s.kind }
func (s *System) Description() string { return s.description }
func (s *System) IsActive() bool      { return s.active }
func (s *System) OrgID() uint         { return s.orgID }
func (s *System) Created() time.Time  { return s.created }
func (s *System) Edited() *time.Time  { return s.edited }

func (s *System) SetID(id uint) {
	s.id = id
}

// Edit replaces every editable field and stamps the edit date.
func (s *System) Edit(name, kind, description string, active bool) error {
	name, err := validName(name)
	if err != nil {
		return err
	}
	s.name = name
	s.kind = strings.TrimSpace(kind)
	s.description = strings.TrimSpace(description)
	s.active = active
	now := biztime.NowUTC()
	s.edited = &now
	return nil
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("system name is required")
	}
	if len(name) > 100 {
		return "", fmt.Errorf("system name too long (max 100 characters)")
	}
	return name, nil
}

type Repository interface {
	Create(ctx context.Context, s *System) error
	Update(ctx context.Context, s *System) error
	// Delete returns ErrSystemInUse while a live ticket references id.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*System, error)
	List(ctx context.Context) ([]*System, error)
	ListByOrg(ctx context.Context, orgID uint) ([]*System, error)
}
