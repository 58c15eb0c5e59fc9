package ticket

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketView, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query usecases.GetTicketQuery) (*dto.TicketView, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, q usecases.ListTicketsQuery) (*dto.ListResult, error)
	Assigned(ctx context.Context, q usecases.AssignedTicketsQuery) (*dto.ListResult, error)
	ByRequester(ctx context.Context, q usecases.RequesterTicketsQuery) (*dto.ListResult, error)
}

type ListAllTicketsExecutor interface {
	Execute(ctx context.Context, actor common.Actor) ([]*dto.TicketView, error)
}

type SearchTicketsExecutor interface {
	Execute(ctx context.Context, q usecases.SearchTicketsQuery) ([]*dto.TicketView, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketView, error)
}

type UpdateStatusExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateStatusCommand) (*dto.TicketView, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketView, error)
}

type CommentExecutor interface {
	Execute(ctx context.Context, cmd usecases.CommentCommand) (*dto.TicketView, error)
}

type AttachmentExecutor interface {
	Execute(ctx context.Context, cmd usecases.AttachmentCommand) (*dto.TicketView, error)
}

type SubscriptionExecutor interface {
	Execute(ctx context.Context, cmd usecases.SubscriptionCommand) (*dto.TicketView, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.DeleteTicketCommand) error
}

type OverdueTicketsExecutor interface {
	Execute(ctx context.Context, q usecases.OverdueQuery) ([]dto.OverdueView, error)
}

type TicketCountsExecutor interface {
	ByTag(ctx context.Context, q usecases.CountsQuery) ([]dto.CountView, error)
	ByType(ctx context.Context, q usecases.CountsQuery) ([]dto.CountView, error)
	TopGroups(ctx context.Context, q usecases.CountsQuery) ([]dto.CountView, error)
}

// UseCases bundles every ticket use case the handler dispatches to.
type UseCases struct {
	Create       CreateTicketExecutor
	Get          GetTicketExecutor
	List         ListTicketsExecutor
	ListAll      ListAllTicketsExecutor
	Search       SearchTicketsExecutor
	Update       UpdateTicketExecutor
	UpdateStatus UpdateStatusExecutor
	Assign       AssignTicketExecutor
	Comment      CommentExecutor
	Attachment   AttachmentExecutor
	Subscription SubscriptionExecutor
	Delete       DeleteTicketExecutor
	Overdue      OverdueTicketsExecutor
	Counts       TicketCountsExecutor
}

type countsFunc func(ctx context.Context, q usecases.CountsQuery) ([]dto.CountView, error)
