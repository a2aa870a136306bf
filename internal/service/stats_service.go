package service

import (
	"math"
	"time"

	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"
)

// activityStreamSize is how many recent rentals the dashboard shows
const activityStreamSize = 10

// ActivityEntry is one line in the dashboard activity stream
type ActivityEntry struct {
	Type     string             `json:"type"`
	Title    string             `json:"title"`
	Subtitle string             `json:"subtitle"`
	Time     time.Time          `json:"time"`
	Amount   *float64           `json:"amount,omitempty"`
	Status   model.RentalStatus `json:"status"`
}

// DashboardStats is the aggregate metrics payload. It feeds the dashboard
// view and the metrics broadcast only; the alerting poller never reads it.
type DashboardStats struct {
	TotalRevenue      float64         `json:"total_revenue"`
	RevenuePerMinute  float64         `json:"revenue_per_minute"`
	ActiveRentals     int64           `json:"active_rentals"`
	TotalCustomers    int64           `json:"total_customers"`
	TotalConsoles     int64           `json:"total_consoles"`
	AvailableConsoles int64           `json:"available_consoles"`
	Activity          []ActivityEntry `json:"activity"`
}

type StatsService interface {
	GetDashboardStats() (*DashboardStats, error)
}

type statsService struct {
	rentalRepo   repository.RentalRepository
	consoleRepo  repository.ConsoleRepository
	customerRepo repository.CustomerRepository
}

func NewStatsService(rentalRepo repository.RentalRepository, consoleRepo repository.ConsoleRepository, customerRepo repository.CustomerRepository) StatsService {
	return &statsService{
		rentalRepo:   rentalRepo,
		consoleRepo:  consoleRepo,
		customerRepo: customerRepo,
	}
}

func (s *statsService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalRevenue, err = s.rentalRepo.SumRevenue(); err != nil {
		return nil, err
	}
	if stats.ActiveRentals, err = s.rentalRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.TotalCustomers, err = s.customerRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalConsoles, err = s.consoleRepo.Count(); err != nil {
		return nil, err
	}
	if stats.AvailableConsoles, err = s.consoleRepo.CountByStatus(model.ConsoleAvailable); err != nil {
		return nil, err
	}

	// Revenue per minute accrues from the hourly price of every unit
	// currently out the door.
	active, err := s.rentalRepo.FindActive()
	if err != nil {
		return nil, err
	}
	perMinute := 0.0
	for _, r := range active {
		if r.Console != nil {
			perMinute += r.Console.HourlyPrice / 60
		}
	}
	stats.RevenuePerMinute = math.Round(perMinute*100) / 100

	recent, err := s.rentalRepo.FindRecent(activityStreamSize)
	if err != nil {
		return nil, err
	}
	stats.Activity = make([]ActivityEntry, 0, len(recent))
	for _, r := range recent {
		entry := ActivityEntry{
			Type:   "rental",
			Time:   r.StartTime,
			Status: r.Status,
		}
		consoleName := "Console"
		if r.Console != nil {
			consoleName = r.Console.Name
		}
		if r.Status == model.RentalActive {
			entry.Title = consoleName + " - rented out"
		} else {
			entry.Title = consoleName + " - returned"
			amount := r.TotalCost
			entry.Amount = &amount
		}
		if r.Customer != nil {
			entry.Subtitle = "Customer: " + r.Customer.FirstName
		} else {
			entry.Subtitle = "Walk-in rental"
		}
		stats.Activity = append(stats.Activity, entry)
	}

	return stats, nil
}
