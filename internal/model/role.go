package model

// Role represents operator roles in the system
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // STAFF, MANAGER, OWNER
	Name        string `gorm:"type:varchar(100)" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Role codes as constants
const (
	RoleStaff   = "STAFF"
	RoleManager = "MANAGER"
	RoleOwner   = "OWNER"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleStaff,
		Name:        "Staff",
		Description: "Front-desk operator handling day-to-day rentals",
	},
	{
		Code:        RoleManager,
		Name:        "Manager",
		Description: "Shift manager with extended section access",
	},
	{
		Code:        RoleOwner,
		Name:        "Owner",
		Description: "Business owner with full system access",
	},
}
