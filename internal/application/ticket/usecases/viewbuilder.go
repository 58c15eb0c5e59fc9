package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/utils/setutil"
)

// ViewBuilder turns tickets into TicketViews with one batch lookup per
// referenced collection, whatever the number of tickets.
type ViewBuilder struct {
	users  user.Repository
	groups group.Repository
	types  tickettype.Repository
	tags   tag.Repository
	perms  common.PermissionChecker
}

func NewViewBuilder(
	users user.Repository,
	groups group.Repository,
	types tickettype.Repository,
	tags tag.Repository,
	perms common.PermissionChecker,
) *ViewBuilder {
	return &ViewBuilder{
		users:  users,
		groups: groups,
		types:  types,
		tags:   tags,
		perms:  perms,
	}
}

type lookups struct {
	users  map[uint]*user.User
	groups map[uint]*group.Group
	types  map[uint]*tickettype.TicketType
	tags   map[uint]*tag.Tag
}

func (b *ViewBuilder) One(ctx context.Context, actor common.Actor, t *ticket.Ticket) (*dto.TicketView, error) {
	views, err := b.Build(ctx, actor, []*ticket.Ticket{t})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Build resolves references for every ticket. Notes are included only when
// the actor may view them.
func (b *ViewBuilder) Build(ctx context.Context, actor common.Actor, tickets []*ticket.Ticket) ([]*dto.TicketView, error) {
	withNotes := actor.Can(b.perms, permission.CapNotesView)

	lk, err := b.fetch(ctx, tickets, withNotes)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.TicketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, lk.view(t, withNotes))
	}
	return views, nil
}

func (b *ViewBuilder) fetch(ctx context.Context, tickets []*ticket.Ticket, withNotes bool) (*lookups, error) {
	userIDs := setutil.NewUintSet()
	groupIDs := setutil.NewUintSet()
	typeIDs := setutil.NewUintSet()
	tagIDs := setutil.NewUintSet()

	for _, t := range tickets {
		userIDs.Add(t.OwnerID())
		if a := t.AssigneeID(); a != nil {
			userIDs.Add(*a)
		}
		for _, c := range t.Comments() {
			userIDs.Add(c.OwnerID())
		}
		if withNotes {
			for _, n := range t.Notes() {
				userIDs.Add(n.OwnerID())
			}
		}
		for _, a := range t.Attachments() {
			userIDs.Add(a.OwnerID())
		}
		for _, h := range t.History() {
			userIDs.Add(h.OwnerID())
		}
		groupIDs.Add(t.GroupID())
		typeIDs.Add(t.TypeID())
		tagIDs.AddAll(t.TagIDs())
	}

	lk := &lookups{
		users:  map[uint]*user.User{},
		groups: map[uint]*group.Group{},
		types:  map[uint]*tickettype.TicketType{},
		tags:   map[uint]*tag.Tag{},
	}

	if userIDs.Len() > 0 {
		users, err := b.users.GetByIDs(ctx, userIDs.Sorted())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve users: %w", err)
		}
		for _, u := range users {
			lk.users[u.ID()] = u
		}
	}
	if groupIDs.Len() > 0 {
		groups, err := b.groups.GetByIDs(ctx, groupIDs.Sorted())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve groups: %w", err)
		}
		for _, g := range groups {
			lk.groups[g.ID()] = g
		}
	}
	if typeIDs.Len() > 0 {
		types, err := b.types.GetByIDs(ctx, typeIDs.Sorted())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ticket types: %w", err)
		}
		for _, tt := range types {
			lk.types[tt.ID()] = tt
		}
	}
	if tagIDs.Len() > 0 {
		tags, err := b.tags.GetByIDs(ctx, tagIDs.Sorted())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tags: %w", err)
		}
		for _, tg := range tags {
			lk.tags[tg.ID()] = tg
		}
	}

	return lk, nil
}

// userView falls back to an id-only view for users that no longer exist.
func (lk *lookups) userView(id uint) *dto.UserView {
	u, ok := lk.users[id]
	if !ok {
		return &dto.UserView{ID: id}
	}
	return &dto.UserView{
		ID:       u.ID(),
		Username: u.Username(),
		Fullname: u.Fullname(),
		Role:     u.Role(),
	}
}

func (lk *lookups) view(t *ticket.Ticket, withNotes bool) *dto.TicketView {
	v := &dto.TicketView{
		ID:            t.ID(),
		UID:           t.UID(),
		Subject:       t.Subject(),
		Issue:         t.Issue(),
		Status:        t.Status().Int(),
		StatusLabel:   t.Status().Label(),
		Priority:      t.Priority().Int(),
		PriorityLabel: t.Priority().Label(),
		Owner:         lk.userView(t.OwnerID()),
		OrgID:         t.OrgID(),
		SystemID:      t.SystemID(),
		Date:          t.Date(),
		Updated:       t.Updated(),
		ClosedDate:    t.ClosedDate(),
		Subscribers:   t.Subscribers(),
		Version:       t.Version(),
		Tags:          []dto.NamedView{},
		Comments:      lk.commentViews(t.Comments()),
		Attachments:   make([]dto.AttachmentView, 0, len(t.Attachments())),
		History:       make([]dto.HistoryView, 0, len(t.History())),
	}

	if a := t.AssigneeID(); a != nil {
		v.Assignee = lk.userView(*a)
	}
	if g, ok := lk.groups[t.GroupID()]; ok {
		v.Group = &dto.NamedView{ID: g.ID(), Name: g.Name()}
	} else {
		v.Group = &dto.NamedView{ID: t.GroupID()}
	}
	if tt, ok := lk.types[t.TypeID()]; ok {
		v.Type = &dto.NamedView{ID: tt.ID(), Name: tt.Name()}
	} else {
		v.Type = &dto.NamedView{ID: t.TypeID()}
	}
	for _, id := range t.TagIDs() {
		if tg, ok := lk.tags[id]; ok {
			v.Tags = append(v.Tags, dto.NamedView{ID: tg.ID(), Name: tg.Name()})
		}
	}
	if withNotes {
		v.Notes = lk.commentViews(t.Notes())
	}
	for _, a := range t.Attachments() {
		v.Attachments = append(v.Attachments, dto.AttachmentView{
			ID:       a.ID(),
			Owner:    lk.userView(a.OwnerID()),
			Name:     a.Name(),
			Path:     a.Path(),
			MimeType: a.MimeType(),
			Date:     a.Date(),
		})
	}
	for _, h := range t.History() {
		v.History = append(v.History, dto.HistoryView{
			Action:      h.Action(),
			Description: h.Description(),
			Owner:       lk.userView(h.OwnerID()),
			Date:        h.Date(),
		})
	}
	return v
}

func (lk *lookups) commentViews(list []*ticket.Comment) []dto.CommentView {
	out := make([]dto.CommentView, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CommentView{
			ID:    c.ID(),
			Owner: lk.userView(c.OwnerID()),
			Body:  c.Body(),
			Date:  c.Date(),
		})
	}
	return out
}
