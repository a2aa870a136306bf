package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Operator represents a console operator (staff member) in the system
type Operator struct {
	BaseModel
	Username     string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Password     string       `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName     string       `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	Bio          string       `gorm:"type:text" json:"bio"`
	AvatarURL    string       `gorm:"type:varchar(500)" json:"avatar_url"`
	RoleID       *uint        `gorm:"index" json:"role_id"`
	Role         *Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive     bool         `gorm:"default:true" json:"is_active"`
	Capabilities []Capability `gorm:"many2many:operator_capabilities;" json:"capabilities,omitempty"`
	TokenVersion string       `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt   *time.Time   `json:"last_seen_at,omitempty"`                // For operator presence

	// Lifetime processed-request counters, incremented on every review action.
	// The per-day breakdown lives in OperatorAction.
	ProcessedRentals int64 `gorm:"default:0" json:"processed_rentals"`
	ProcessedKYC     int64 `gorm:"default:0" json:"processed_kyc"`
}

// SetPassword hashes and sets the operator's password
func (o *Operator) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (o *Operator) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(o.Password), []byte(password))
	return err == nil
}

// HasCapability checks if the operator holds a specific capability code
func (o *Operator) HasCapability(code string) bool {
	for _, c := range o.Capabilities {
		if c.Code == code {
			return true
		}
	}
	return false
}

// GetCapabilityCodes returns a slice of all capability codes for this operator
func (o *Operator) GetCapabilityCodes() []string {
	codes := make([]string, len(o.Capabilities))
	for i, c := range o.Capabilities {
		codes[i] = c.Code
	}
	return codes
}

// OperatorResponse is used for API responses (without sensitive data)
type OperatorResponse struct {
	ID               uuid.UUID    `json:"id"`
	Username         string       `json:"username"`
	FullName         string       `json:"full_name"`
	Bio              string       `json:"bio"`
	AvatarURL        string       `json:"avatar_url"`
	RoleID           *uint        `json:"role_id,omitempty"`
	Role             *Role        `json:"role,omitempty"`
	IsActive         bool         `json:"is_active"`
	LastSeenAt       *time.Time   `json:"last_seen_at,omitempty"`
	Capabilities     []Capability `json:"capabilities"`
	ProcessedRentals int64        `json:"processed_rentals"`
	ProcessedKYC     int64        `json:"processed_kyc"`
	CreatedAt        time.Time    `json:"created_at"`
}

// ToResponse converts Operator to OperatorResponse
func (o *Operator) ToResponse() OperatorResponse {
	return OperatorResponse{
		ID:               o.ID,
		Username:         o.Username,
		FullName:         o.FullName,
		Bio:              o.Bio,
		AvatarURL:        o.AvatarURL,
		RoleID:           o.RoleID,
		Role:             o.Role,
		IsActive:         o.IsActive,
		LastSeenAt:       o.LastSeenAt,
		Capabilities:     o.Capabilities,
		ProcessedRentals: o.ProcessedRentals,
		ProcessedKYC:     o.ProcessedKYC,
		CreatedAt:        o.CreatedAt,
	}
}
