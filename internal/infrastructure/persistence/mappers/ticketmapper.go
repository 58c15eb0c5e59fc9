package mappers

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

// TicketChildren are the rows loaded alongside a ticket.
type TicketChildren struct {
	Comments    []models.CommentModel
	Attachments []models.AttachmentModel
	History     []models.HistoryModel
	TagIDs      []uint
}

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket row and its children to a domain entity.
	ToDomain(model *models.TicketModel, children TicketChildren) (*ticket.Ticket, error)

	CommentsToModels(t *ticket.Ticket) []models.CommentModel
	AttachmentsToModels(t *ticket.Ticket) []models.AttachmentModel
	HistoryToModel(ticketID uint, h *ticket.HistoryEntry) *models.HistoryModel
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		UID:         t.UID(),
		OwnerID:     t.OwnerID(),
		AssigneeID:  t.AssigneeID(),
		GroupID:     t.GroupID(),
		TypeID:      t.TypeID(),
		OrgID:       t.OrgID(),
		SystemID:    t.SystemID(),
		Priority:    t.Priority().Int(),
		Status:      t.Status().Int(),
		Subject:     t.Subject(),
		Issue:       t.Issue(),
		Date:        t.Date().UnixMilli(),
		Updated:     toMillisPtr(t.Updated()),
		ClosedDate:  toMillisPtr(t.ClosedDate()),
		Deleted:     t.IsDeleted(),
		Subscribers: t.Subscribers(),
		Version:     t.Version(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel, children TicketChildren) (*ticket.Ticket, error) {
	comments := make([]*ticket.Comment, 0)
	notes := make([]*ticket.Comment, 0)
	for _, c := range children.Comments {
		if c.TicketID != model.ID {
			continue
		}
		entry := ticket.ReconstructComment(c.ID, ticket.CommentKind(c.Kind), c.OwnerID, c.Body, fromMillis(c.Date))
		if entry.IsNote() {
			notes = append(notes, entry)
		} else {
			comments = append(comments, entry)
		}
	}

	attachments := make([]*ticket.Attachment, 0)
	for _, a := range children.Attachments {
		if a.TicketID != model.ID {
			continue
		}
		attachments = append(attachments, ticket.ReconstructAttachment(a.ID, a.OwnerID, a.Name, a.Path, a.MimeType, fromMillis(a.Date)))
	}

	history := make([]*ticket.HistoryEntry, 0)
	for _, h := range children.History {
		if h.TicketID != model.ID {
			continue
		}
		history = append(history, ticket.ReconstructHistoryEntry(h.ID, h.Action, h.Description, h.OwnerID, fromMillis(h.Date)))
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.UID,
		model.OwnerID,
		model.AssigneeID,
		model.GroupID,
		model.TypeID,
		model.OrgID,
		model.SystemID,
		vo.Priority(model.Priority),
		vo.Status(model.Status),
		children.TagIDs,
		model.Subject,
		model.Issue,
		fromMillis(model.Date),
		fromMillisPtr(model.Updated),
		fromMillisPtr(model.ClosedDate),
		model.Deleted,
		comments,
		notes,
		attachments,
		history,
		model.Subscribers,
		model.Version,
	)
}

// CommentsToModels returns comments and notes together.
func (m *TicketMapperImpl) CommentsToModels(t *ticket.Ticket) []models.CommentModel {
	all := t.CommentsAndNotes()
	out := make([]models.CommentModel, 0, len(all))
	for _, c := range all {
		out = append(out, models.CommentModel{
			ID:       c.ID(),
			TicketID: t.ID(),
			Kind:     string(c.Kind()),
			OwnerID:  c.OwnerID(),
			Body:     c.Body(),
			Date:     c.Date().UnixMilli(),
		})
	}
	return out
}

func (m *TicketMapperImpl) AttachmentsToModels(t *ticket.Ticket) []models.AttachmentModel {
	out := make([]models.AttachmentModel, 0, len(t.Attachments()))
	for _, a := range t.Attachments() {
		out = append(out, models.AttachmentModel{
			ID:       a.ID(),
			TicketID: t.ID(),
			OwnerID:  a.OwnerID(),
			Name:     a.Name(),
			Path:     a.Path(),
			MimeType: a.MimeType(),
			Date:     a.Date().UnixMilli(),
		})
	}
	return out
}

func (m *TicketMapperImpl) HistoryToModel(ticketID uint, h *ticket.HistoryEntry) *models.HistoryModel {
	return &models.HistoryModel{
		TicketID:    ticketID,
		Action:      h.Action(),
		Description: h.Description(),
		OwnerID:     h.OwnerID(),
		Date:        h.Date().UnixMilli(),
	}
}

func fromMillis(millis int64) time.Time {
	return time.UnixMilli(millis).UTC()
}

func fromMillisPtr(millis *int64) *time.Time {
	if millis == nil {
		return nil
	}
	t := fromMillis(*millis)
	return &t
}

func toMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
