package dto

// SettingItem is one key/value pair in a settings update.
type SettingItem struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// UpdateSettingsRequest replaces the values of the listed settings.
type UpdateSettingsRequest struct {
	Settings []SettingItem `json:"settings" validate:"required,min=1,dive"`
}
