package models

// Settings is the whole-document application settings record. It is loaded
// and saved wholesale, never partially patched.
type Settings struct {
	EmailNotifications bool   `json:"email_notifications"`
	Email              string `json:"email,omitempty"`
	DataRetentionDays  int    `json:"data_retention_days"`
}

// DefaultSettings mirrors the values the settings page falls back to when no
// document exists yet.
func DefaultSettings() Settings {
	return Settings{
		EmailNotifications: false,
		DataRetentionDays:  365,
	}
}
