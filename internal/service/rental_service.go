package service

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"
	"go-rental-console/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrConsoleNotFound    = errors.New("console not found")
	ErrConsoleUnavailable = errors.New("console is not available")
	ErrNoActiveRental     = errors.New("no active rental found for this console")
	ErrInvalidHours       = errors.New("rental hours must be positive")
)

// TerminationSummary is returned to the operator when a rental is closed out
type TerminationSummary struct {
	RentalID      uuid.UUID `json:"rental_id"`
	TotalCost     float64   `json:"total_cost"`
	DurationHours float64   `json:"duration_hours"`
}

type RentalService interface {
	CheckAvailable(consoleID uuid.UUID) error

	// StartFromRequest creates the active rental for an approved rental
	// request and marks the console rented, atomically.
	StartFromRequest(request *model.ReviewableRequest) (*model.Rental, error)

	// StartManual starts a walk-in rental with no backing request
	StartManual(consoleID uuid.UUID, hours int) (*model.Rental, error)

	// Terminate closes the active rental on a console and computes its cost
	Terminate(consoleID uuid.UUID) (*TerminationSummary, error)

	History() ([]model.RentalResponse, error)
}

type rentalService struct {
	rentalRepo  repository.RentalRepository
	consoleRepo repository.ConsoleRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewRentalService(rentalRepo repository.RentalRepository, consoleRepo repository.ConsoleRepository, db *gorm.DB, hub *ws.Hub) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		consoleRepo: consoleRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *rentalService) CheckAvailable(consoleID uuid.UUID) error {
	console, err := s.consoleRepo.FindByID(consoleID)
	if err != nil {
		return ErrConsoleNotFound
	}
	if console.Status != model.ConsoleAvailable {
		return ErrConsoleUnavailable
	}
	return nil
}

func (s *rentalService) StartFromRequest(request *model.ReviewableRequest) (*model.Rental, error) {
	if request.ConsoleID == nil {
		return nil, ErrConsoleNotFound
	}
	hours := request.SelectedHours
	if hours <= 0 {
		hours = 24
	}
	customerID := request.CustomerID
	return s.start(*request.ConsoleID, &customerID, hours)
}

func (s *rentalService) StartManual(consoleID uuid.UUID, hours int) (*model.Rental, error) {
	if hours <= 0 {
		return nil, ErrInvalidHours
	}
	return s.start(consoleID, nil, hours)
}

func (s *rentalService) start(consoleID uuid.UUID, customerID *uuid.UUID, hours int) (*model.Rental, error) {
	if err := s.CheckAvailable(consoleID); err != nil {
		return nil, err
	}

	now := time.Now()
	rental := &model.Rental{
		CustomerID:      customerID,
		ConsoleID:       consoleID,
		StartTime:       now,
		ExpectedEndTime: now.Add(time.Duration(hours) * time.Hour),
		Status:          model.RentalActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.rentalRepo.Create(tx, rental); err != nil {
			return err
		}
		return s.consoleRepo.UpdateStatus(tx, consoleID, model.ConsoleRented)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastFleet("rental_started", consoleID)
	return rental, nil
}

func (s *rentalService) Terminate(consoleID uuid.UUID) (*TerminationSummary, error) {
	rental, err := s.rentalRepo.FindActiveByConsole(consoleID)
	if err != nil {
		return nil, ErrNoActiveRental
	}

	now := time.Now()
	hours := now.Sub(rental.StartTime).Hours()
	hours = math.Max(1, math.Round(hours*100)/100) // Minimum one hour charge

	hourlyPrice := 0.0
	if rental.Console != nil {
		hourlyPrice = rental.Console.HourlyPrice
	}
	totalCost := math.Round(hours*hourlyPrice*100) / 100

	rental.Status = model.RentalCompleted
	rental.EndTime = &now
	rental.TotalCost = totalCost

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rental).Error; err != nil {
			return err
		}
		return s.consoleRepo.UpdateStatus(tx, consoleID, model.ConsoleAvailable)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastFleet("rental_terminated", consoleID)

	return &TerminationSummary{
		RentalID:      rental.ID,
		TotalCost:     totalCost,
		DurationHours: hours,
	}, nil
}

func (s *rentalService) History() ([]model.RentalResponse, error) {
	rentals, err := s.rentalRepo.FindAll()
	if err != nil {
		return nil, err
	}

	history := make([]model.RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		entry := model.RentalResponse{
			ID:              r.ID,
			StartTime:       r.StartTime,
			ExpectedEndTime: r.ExpectedEndTime,
			EndTime:         r.EndTime,
			Status:          r.Status,
			TotalCost:       r.TotalCost,
		}
		if r.Customer != nil {
			entry.CustomerName = r.Customer.FirstName
			entry.CustomerHandle = r.Customer.Handle
		}
		if r.Console != nil {
			entry.ConsoleName = r.Console.Name
		}
		history = append(history, entry)
	}
	return history, nil
}

func (s *rentalService) broadcastFleet(event string, consoleID uuid.UUID) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":       event,
			"console_id": consoleID,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
