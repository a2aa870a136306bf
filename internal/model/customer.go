package model

// VerificationStatus is the customer's identity-verification state,
// kept in sync with the latest KYC request decision
type VerificationStatus string

const (
	VerificationNone     VerificationStatus = "none"
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Customer is a renting customer. Customer records are created by the
// customer-facing channel; the console only reads and annotates them.
type Customer struct {
	BaseModel
	FirstName        string             `gorm:"type:varchar(255)" json:"first_name"`
	Handle           string             `gorm:"type:varchar(100);index" json:"handle"`
	Verification     VerificationStatus `gorm:"type:varchar(20);default:'none'" json:"verification"`
	VerificationNote string             `gorm:"type:text" json:"verification_note"`
}

// CustomerResponse enriches a customer with their rental history for listings
type CustomerResponse struct {
	Customer
	Rentals     []RentalResponse `json:"rentals"`
	RentalCount int              `json:"rental_count"`
}
