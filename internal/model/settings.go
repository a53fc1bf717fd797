package model

// SettingsID is the fixed key of the single settings row.
const SettingsID = 1

// Settings is the global preferences record.
type Settings struct {
	ID             int64  `json:"id"`
	RecipientEmail string `json:"recipient_email"`
}
