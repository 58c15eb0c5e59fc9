package tickettype

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTypeNotFound = errors.New("ticket type not found")
	// ErrTypeIsDefault blocks deleting the type the mail importer falls back to.
	ErrTypeIsDefault   = errors.New("ticket type is the mailer default")
	ErrSameReplacement = errors.New("replacement type must differ from the deleted type")
)

type TicketType struct {
	id   uint
	name string
}

func NewTicketType(name string) (*TicketType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("ticket type name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("ticket type name too long (max 100 characters)")
	}
	return &TicketType{name: name}, nil
}

func ReconstructTicketType(id uint, name string) *TicketType {
	return &TicketType{id: id, name: name}
}

func (t *TicketType) ID() uint     { return t.id }
func (t *TicketType) Name() string { return t.name }

func (t *TicketType) SetID(id uint) {
	t.id = id
}

func (t *TicketType) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("ticket type name is required")
	}
	t.name = name
	return nil
}

type Repository interface {
	Create(ctx context.Context, t *TicketType) error
	Update(ctx context.Context, t *TicketType) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*TicketType, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*TicketType, error)
	List(ctx context.Context) ([]*TicketType, error)
}
