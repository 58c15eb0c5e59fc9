package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketView, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketView, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*dto.ListResult, error)
}

type SearchTicketsExecutor interface {
	Execute(ctx context.Context, query SearchTicketsQuery) ([]*dto.TicketView, error)
}

type UpdateStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateStatusCommand) (*dto.TicketView, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketView, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketView, error)
}

type CommentExecutor interface {
	Execute(ctx context.Context, cmd CommentCommand) (*dto.TicketView, error)
}

type AttachmentExecutor interface {
	Execute(ctx context.Context, cmd AttachmentCommand) (*dto.TicketView, error)
}

type SubscriptionExecutor interface {
	Execute(ctx context.Context, cmd SubscriptionCommand) (*dto.TicketView, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type OverdueTicketsExecutor interface {
	Execute(ctx context.Context, query OverdueQuery) ([]dto.OverdueView, error)
}
