package dto

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/setting"
)

const maskedValue = "********"

type SettingView struct {
	Category    string    `json:"category"`
	Key         string    `json:"key"`
	Value       any       `json:"value"`
	Kind        string    `json:"kind"`
	Description string    `json:"description,omitempty"`
	Sensitive   bool      `json:"sensitive"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CategorySettingsResponse struct {
	Category string        `json:"category"`
	Settings []SettingView `json:"settings"`
}

// UpdateCategorySettingsRequest maps setting names to new values.
type UpdateCategorySettingsRequest struct {
	Settings map[string]any `json:"settings" binding:"required"`
}

type MailerDefaultTypeRequest struct {
	TypeID uint `json:"type_id" binding:"required"`
}

// ToSettingView masks credentials. An unset credential stays empty so
// clients can tell it apart from a configured one.
func ToSettingView(s *setting.Setting) SettingView {
	view := SettingView{
		Category:    s.Category(),
		Key:         s.Name(),
		Value:       s.Value(),
		Kind:        string(s.Kind()),
		Description: s.Description(),
		Sensitive:   s.Sensitive(),
		UpdatedAt:   s.UpdatedAt(),
	}
	if view.Sensitive && s.IsSet() {
		view.Value = maskedValue
	}
	return view
}
