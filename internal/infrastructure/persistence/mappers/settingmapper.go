package mappers

import (
	"github.com/orris-inc/helpdesk/internal/domain/setting"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
)

func SettingToDomain(m *models.SettingModel) *setting.Setting {
	return setting.Reconstruct(
		m.ID, m.Category, m.Name,
		setting.Kind(m.Kind), m.Value, m.Description,
		m.UpdatedBy, m.Version, m.CreatedAt, m.UpdatedAt,
	)
}

func SettingToModel(s *setting.Setting) *models.SettingModel {
	return &models.SettingModel{
		ID:          s.ID(),
		Category:    s.Category(),
		Name:        s.Name(),
		Kind:        string(s.Kind()),
		Value:       s.Raw(),
		Description: s.Description(),
		UpdatedBy:   s.UpdatedBy(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}
