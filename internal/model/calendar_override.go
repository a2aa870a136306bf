package model

// OverrideType is the kind of per-date scheduling rule
type OverrideType string

const (
	OverrideDiscount OverrideType = "discount"
	OverrideBlackout OverrideType = "blackout"
)

// CalendarOverride is a per-date scheduling rule: either a discount
// percentage or a full blackout. At most one record exists per date;
// writes replace the whole record, never merge fields.
type CalendarOverride struct {
	ID          uint         `gorm:"primaryKey" json:"-"`
	Date        string       `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	Type        OverrideType `gorm:"type:varchar(20);not null" json:"type"`
	Value       int          `gorm:"default:0" json:"value"` // Discount percentage, 0 for blackout
	Description string       `gorm:"type:text" json:"description"`
}
