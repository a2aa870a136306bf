package model

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies an independent stream of reviewable requests.
// Rental and KYC requests share identical transition semantics but are
// counted and listed separately.
type Category string

const (
	CategoryRental Category = "rental"
	CategoryKYC    Category = "kyc"
)

// Categories lists every request category in the system
var Categories = []Category{CategoryRental, CategoryKYC}

// RequestStatus is the lifecycle state of a reviewable request.
// It starts at pending and transitions at most once, to exactly one
// terminal value.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// ReviewOutcome is the decision an operator takes on a pending request
type ReviewOutcome string

const (
	OutcomeApprove ReviewOutcome = "approve"
	OutcomeReject  ReviewOutcome = "reject"
)

// TerminalStatus maps a review outcome to the status it produces
func (o ReviewOutcome) TerminalStatus() RequestStatus {
	if o == OutcomeApprove {
		return StatusApproved
	}
	return StatusRejected
}

// ReviewableRequest is a customer-submitted request awaiting operator review.
// Both rental requests and identity-verification requests use this shape;
// Category tells them apart.
type ReviewableRequest struct {
	BaseModel
	Category   Category      `gorm:"type:varchar(20);index;not null" json:"category"`
	CustomerID uuid.UUID     `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Status     RequestStatus `gorm:"type:varchar(20);index;default:'pending'" json:"status"`

	// Set only on the single pending -> terminal transition
	ReviewerID *uuid.UUID `gorm:"type:uuid" json:"reviewer_id,omitempty"`
	Reviewer   *Operator  `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	Note       string     `gorm:"type:text" json:"note"`

	// Rental request fields
	ConsoleID     *uuid.UUID `gorm:"type:uuid" json:"console_id,omitempty"`
	Console       *Console   `gorm:"foreignKey:ConsoleID" json:"console,omitempty"`
	SelectedHours int        `gorm:"default:0" json:"selected_hours,omitempty"`

	// KYC request fields
	PhotoURL string `gorm:"type:varchar(500)" json:"photo_url,omitempty"`
}

// IsPending reports whether the request still awaits review
func (r *ReviewableRequest) IsPending() bool {
	return r.Status == StatusPending
}
