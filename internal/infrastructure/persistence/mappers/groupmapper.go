package mappers

import (
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

func GroupToModel(g *group.Group) *models.GroupModel {
	return &models.GroupModel{
		ID:         g.ID(),
		Name:       g.Name(),
		Members:    g.Members(),
		SendMailTo: g.SendMailTo(),
		Public:     g.IsPublic(),
		OrgID:      g.OrgID(),
	}
}

func GroupToDomain(model *models.GroupModel) *group.Group {
	if model == nil {
		return nil
	}
	return group.ReconstructGroup(model.ID, model.Name, model.Members, model.SendMailTo, model.Public, model.OrgID)
}

func GroupsToDomain(list []*models.GroupModel) []*group.Group {
	out := make([]*group.Group, 0, len(list))
	for _, m := range list {
		out = append(out, GroupToDomain(m))
	}
	return out
}

func OrganizationToModel(o *organization.Organization) *models.OrganizationModel {
	return &models.OrganizationModel{
		ID:        o.ID(),
		Name:      o.Name(),
		ShortName: o.ShortName(),
		Members:   o.Members(),
	}
}

func OrganizationToDomain(model *models.OrganizationModel) *organization.Organization {
	if model == nil {
		return nil
	}
	return organization.ReconstructOrganization(model.ID, model.Name, model.ShortName, model.Members)
}
