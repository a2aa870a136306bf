package model

import (
	"time"

	"github.com/google/uuid"
)

// RentalStatus is the lifecycle state of a rental
type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalCompleted RentalStatus = "completed"
)

// Rental is a running or finished rental of one console by one customer.
// Created when a rental request is approved or when an operator starts a
// manual walk-in rental.
type Rental struct {
	BaseModel
	CustomerID      *uuid.UUID   `gorm:"type:uuid;index" json:"customer_id"` // nil for manual walk-ins
	Customer        *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ConsoleID       uuid.UUID    `gorm:"type:uuid;index;not null" json:"console_id"`
	Console         *Console     `gorm:"foreignKey:ConsoleID" json:"console,omitempty"`
	StartTime       time.Time    `json:"start_time"`
	ExpectedEndTime time.Time    `json:"expected_end_time"`
	EndTime         *time.Time   `json:"end_time,omitempty"`
	Status          RentalStatus `gorm:"type:varchar(20);index;default:'active'" json:"status"`
	TotalCost       float64      `gorm:"default:0" json:"total_cost"` // Computed at termination
}

// RentalResponse is the enriched rental shape used by history and
// customer listings
type RentalResponse struct {
	ID              uuid.UUID    `json:"id"`
	CustomerName    string       `json:"customer_name"`
	CustomerHandle  string       `json:"customer_handle"`
	ConsoleName     string       `json:"console_name"`
	StartTime       time.Time    `json:"start_time"`
	ExpectedEndTime time.Time    `json:"expected_end_time"`
	EndTime         *time.Time   `json:"end_time,omitempty"`
	Status          RentalStatus `json:"status"`
	TotalCost       float64      `json:"total_cost"`
}
