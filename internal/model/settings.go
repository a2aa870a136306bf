package model

// Settings is the single-row console configuration. A fixed ID keeps
// reads and writes pointed at the same record.
type Settings struct {
	ID                   uint   `gorm:"primaryKey" json:"-"`
	RequireApproval      bool   `gorm:"default:true" json:"require_approval"`
	NotificationsEnabled bool   `gorm:"default:true" json:"notifications_enabled"`
	AlertSoundEnabled    bool   `gorm:"default:true" json:"alert_sound_enabled"`
	HelpText             string `gorm:"type:text" json:"help_text"`
	SupportContact       string `gorm:"type:varchar(255)" json:"support_contact"`
}

// SettingsID is the fixed primary key of the single settings row
const SettingsID uint = 1
