package model

// Capability unlocks one console section for an operator.
// The catalog is closed: adding a section is a code change, not configuration.
type Capability struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g. "rentals"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g. "Rental Requests"
}

// Capability codes. "dashboard" is implicit (every operator sees it) and is
// therefore not part of the stored catalog. "all" is the wildcard and
// satisfies every check.
const (
	CapabilityAll       = "all"
	CapabilityDashboard = "dashboard"
	CapabilityConsoles  = "consoles"
	CapabilityRentals   = "rentals"
	CapabilityFinance   = "finance"
	CapabilityUsers     = "users"
	CapabilitySettings  = "settings"
)

// DefaultCapabilities is the seeded section catalog
var DefaultCapabilities = []Capability{
	{Code: CapabilityAll, Name: "Full Access"},
	{Code: CapabilityConsoles, Name: "Console Fleet"},
	{Code: CapabilityRentals, Name: "Rental Requests"},
	{Code: CapabilityFinance, Name: "Finance"},
	{Code: CapabilityUsers, Name: "Customers & Staff"},
	{Code: CapabilitySettings, Name: "Settings"},
}
