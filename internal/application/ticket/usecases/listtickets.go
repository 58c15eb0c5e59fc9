package usecases

import (
	"context"
	"slices"
	"time"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

// ListTicketsQuery carries raw caller input. Status and priority values are
// validated here, before any query runs.
type ListTicketsQuery struct {
	Actor        common.Actor
	Statuses     []int
	Priorities   []int
	TypeIDs      []uint
	TagIDs       []uint
	AssigneeIDs  []uint
	OwnerIDs     []uint
	GroupIDs     []uint
	SystemIDs    []uint
	Text         string
	UID          *int64
	DateStart    *time.Time
	DateEnd      *time.Time
	AssignedSelf bool
	Page         int
	Limit        int
}

type ListTicketsUseCase struct {
	repo       ticket.Repository
	visibility *VisibilityResolver
	views      *ViewBuilder
	perms      common.PermissionChecker
	logger     logger.Interface
}

func NewListTicketsUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		repo:       repo,
		visibility: visibility,
		views:      views,
		perms:      perms,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*dto.ListResult, error) {
	uc.logger.Debugw("executing list tickets use case", "user_id", q.Actor.ID, "page", q.Page, "limit", q.Limit)

	if !q.Actor.Can(uc.perms, permission.CapTicketView) {
		return nil, errors.NewForbiddenError("Not allowed to view tickets")
	}

	filter, err := BuildFilter(q)
	if err != nil {
		return nil, err
	}

	scope, err := uc.visibility.Scope(ctx, q.Actor)
	if err != nil {
		uc.logger.Errorw("failed to resolve visible groups", "error", err)
		return nil, err
	}

	tickets, err := uc.repo.List(ctx, scope, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}
	total, err := uc.repo.Count(ctx, scope, filter)
	if err != nil {
		uc.logger.Errorw("failed to count tickets", "error", err)
		return nil, err
	}

	views, err := uc.views.Build(ctx, q.Actor, tickets)
	if err != nil {
		return nil, err
	}

	return &dto.ListResult{
		Items: views,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// BuildFilter validates the raw query into a repository filter.
func BuildFilter(q ListTicketsQuery) (ticket.Filter, error) {
	f := ticket.Filter{
		TypeIDs:     q.TypeIDs,
		TagIDs:      q.TagIDs,
		AssigneeIDs: q.AssigneeIDs,
		OwnerIDs:    q.OwnerIDs,
		GroupIDs:    q.GroupIDs,
		SystemIDs:   q.SystemIDs,
		Text:        q.Text,
		UID:         q.UID,
		DateStart:   q.DateStart,
		DateEnd:     q.DateEnd,
		PageFilter:  query.NewPageFilter(q.Page, q.Limit),
	}

	violations := []string{}
	for _, s := range q.Statuses {
		status, err := vo.NewStatus(s)
		if err != nil {
			violations = append(violations, err.Error())
			continue
		}
		f.Statuses = append(f.Statuses, status)
	}
	for _, p := range q.Priorities {
		priority, err := vo.NewPriority(p)
		if err != nil {
			violations = append(violations, err.Error())
			continue
		}
		f.Priorities = append(f.Priorities, priority)
	}
	if q.DateStart != nil && q.DateEnd != nil && q.DateEnd.Before(*q.DateStart) {
		violations = append(violations, "date end must not be before date start")
	}
	if len(violations) > 0 {
		return ticket.Filter{}, errors.NewValidationError("Invalid ticket filter", violations...)
	}

	// assignedSelf narrows an explicit assignee list; it never widens it.
	if q.AssignedSelf {
		if len(f.AssigneeIDs) > 0 && !slices.Contains(f.AssigneeIDs, q.Actor.ID) {
			f.MatchNone = true
		}
		f.AssigneeIDs = []uint{q.Actor.ID}
	}
	return f, nil
}

// ListAllTicketsUseCase returns every visible ticket ordered by status.
type ListAllTicketsUseCase struct {
	repo       ticket.Repository
	visibility *VisibilityResolver
	views      *ViewBuilder
	perms      common.PermissionChecker
	logger     logger.Interface
}

func NewListAllTicketsUseCase(
	repo ticket.Repository,
	visibility *VisibilityResolver,
	views *ViewBuilder,
	perms common.PermissionChecker,
	logger logger.Interface,
) *ListAllTicketsUseCase {
	return &ListAllTicketsUseCase{
		repo:       repo,
		visibility: visibility,
		views:      views,
		perms:      perms,
		logger:     logger,
	}
}

func (uc *ListAllTicketsUseCase) Execute(ctx context.Context, actor common.Actor) ([]*dto.TicketView, error) {
	uc.logger.Debugw("executing list all tickets use case", "user_id", actor.ID)

	if !actor.Can(uc.perms, permission.CapTicketView) {
		return nil, errors.NewForbiddenError("Not allowed to view tickets")
	}

	scope, err := uc.visibility.Scope(ctx, actor)
	if err != nil {
		return nil, err
	}
	tickets, err := uc.repo.ListAll(ctx, scope)
	if err != nil {
		uc.logger.Errorw("failed to list all tickets", "error", err)
		return nil, err
	}
	return uc.views.Build(ctx, actor, tickets)
}

// AssignedTicketsQuery lists tickets assigned to the caller that are not
// closed.
type AssignedTicketsQuery struct {
	Actor common.Actor
	Page  int
	Limit int
}

// RequesterTicketsQuery lists tickets owned by one requester.
type RequesterTicketsQuery struct {
	Actor   common.Actor
	OwnerID uint
	Page    int
	Limit   int
}

// Assigned runs the list with the assignee fixed to the caller and every
// status but Closed.
func (uc *ListTicketsUseCase) Assigned(ctx context.Context, q AssignedTicketsQuery) (*dto.ListResult, error) {
	return uc.Execute(ctx, ListTicketsQuery{
		Actor:        q.Actor,
		AssignedSelf: true,
		Statuses: []int{
			vo.StatusNew.Int(),
			vo.StatusOpen.Int(),
			vo.StatusPending.Int(),
		},
		Page:  q.Page,
		Limit: q.Limit,
	})
}

func (uc *ListTicketsUseCase) ByRequester(ctx context.Context, q RequesterTicketsQuery) (*dto.ListResult, error) {
	if q.OwnerID == 0 {
		return nil, errors.NewValidationError("Invalid user")
	}
	return uc.Execute(ctx, ListTicketsQuery{
		Actor:    q.Actor,
		OwnerIDs: []uint{q.OwnerID},
		Page:     q.Page,
		Limit:    q.Limit,
	})
}
