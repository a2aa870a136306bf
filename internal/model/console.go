package model

// ConsoleStatus is the availability state of a rental unit
type ConsoleStatus string

const (
	ConsoleAvailable   ConsoleStatus = "available"
	ConsoleRented      ConsoleStatus = "rented"
	ConsoleMaintenance ConsoleStatus = "maintenance"
)

// Console is a single rentable equipment unit
type Console struct {
	BaseModel
	Name        string        `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Model       string        `gorm:"type:varchar(100)" json:"model"`
	Status      ConsoleStatus `gorm:"type:varchar(20);index;default:'available'" json:"status"`
	HourlyPrice float64       `gorm:"default:0" json:"hourly_price" validate:"gte=0"`
	ImageURL    string        `gorm:"type:varchar(500)" json:"image_url"`
}
