package mappers

import (
	"github.com/orris-inc/helpdesk/internal/domain/system"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

func TicketTypeToDomain(model *models.TicketTypeModel) *tickettype.TicketType {
	return tickettype.ReconstructTicketType(model.ID, model.Name)
}

func TicketTypesToDomain(list []*models.TicketTypeModel) []*tickettype.TicketType {
	out := make([]*tickettype.TicketType, 0, len(list))
	for _, m := range list {
		out = append(out, TicketTypeToDomain(m))
	}
	return out
}

func TagToDomain(model *models.TagModel) *tag.Tag {
	return tag.ReconstructTag(model.ID, model.Name, model.Normalized)
}

func TagsToDomain(list []*models.TagModel) []*tag.Tag {
	out := make([]*tag.Tag, 0, len(list))
	for _, m := range list {
		out = append(out, TagToDomain(m))
	}
	return out
}

func SystemToModel(s *system.System) *models.SystemModel {
	return &models.SystemModel{
		ID:          s.ID(),
		Name:        s.Name(),
		Kind:        s.Kind(),
		Description: s.Description(),
		Active:      s.IsActive(),
		OrgID:       s.OrgID(),
		Created:     s.Created().UnixMilli(),
		Edited:      toMillisPtr(s.Edited()),
	}
}

func SystemToDomain(model *models.SystemModel) *system.System {
	return system.ReconstructSystem(
		model.ID,
		model.Name,
		model.Kind,
		model.Description,
		model.Active,
		model.OrgID,
		fromMillis(model.Created),
		fromMillisPtr(model.Edited),
	)
}

func SystemsToDomain(list []*models.SystemModel) []*system.System {
	out := make([]*system.System, 0, len(list))
	for _, m := range list {
		out = append(out, SystemToDomain(m))
	}
	return out
}
