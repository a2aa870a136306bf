package service

import (
	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"
)

type CustomerService interface {
	// GetAll returns customers enriched with their rental history
	GetAll() ([]model.CustomerResponse, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, rentalRepo repository.RentalRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		rentalRepo:   rentalRepo,
	}
}

func (s *customerService) GetAll() ([]model.CustomerResponse, error) {
	customers, err := s.customerRepo.FindAll()
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentalRepo.FindAll()
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[string][]model.RentalResponse)
	for _, r := range rentals {
		if r.CustomerID == nil {
			continue
		}
		entry := model.RentalResponse{
			ID:              r.ID,
			StartTime:       r.StartTime,
			ExpectedEndTime: r.ExpectedEndTime,
			EndTime:         r.EndTime,
			Status:          r.Status,
			TotalCost:       r.TotalCost,
		}
		if r.Console != nil {
			entry.ConsoleName = r.Console.Name
		}
		key := r.CustomerID.String()
		byCustomer[key] = append(byCustomer[key], entry)
	}

	responses := make([]model.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		customerRentals := byCustomer[c.ID.String()]
		responses = append(responses, model.CustomerResponse{
			Customer:    c,
			Rentals:     customerRentals,
			RentalCount: len(customerRentals),
		})
	}
	return responses, nil
}
