package model

import "github.com/google/uuid"

// OperatorAction tracks how many review actions an operator performed on a
// given calendar day. One row per operator per day, upserted on every action.
type OperatorAction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OperatorID uuid.UUID `gorm:"type:uuid;index:idx_operator_day,unique;not null" json:"operator_id"`
	Day        string    `gorm:"type:varchar(10);index:idx_operator_day,unique;not null" json:"day"` // YYYY-MM-DD
	Count      int64     `gorm:"default:0" json:"count"`
}

// DailyReportEntry is the per-operator activity summary for reports
type DailyReportEntry struct {
	ID               uuid.UUID `json:"id"`
	FullName         string    `json:"full_name"`
	AvatarURL        string    `json:"avatar_url"`
	RoleCode         string    `json:"role_code"`
	TodayActions     int64     `json:"today_actions"`
	ProcessedRentals int64     `json:"processed_rentals"`
	ProcessedKYC     int64     `json:"processed_kyc"`
}
