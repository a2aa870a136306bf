package repository

import (
	"go-rental-console/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RentalRepository interface {
	Create(tx *gorm.DB, rental *model.Rental) error
	Update(rental *model.Rental) error
	FindAll() ([]model.Rental, error)
	FindActiveByConsole(consoleID uuid.UUID) (*model.Rental, error)
	FindActive() ([]model.Rental, error)
	FindRecent(limit int) ([]model.Rental, error)
	CountActive() (int64, error)
	SumRevenue() (float64, error)
}

type rentalRepo struct {
	db *gorm.DB
}

func NewRentalRepo(db *gorm.DB) RentalRepository {
	return &rentalRepo{db}
}

func (r *rentalRepo) Create(tx *gorm.DB, rental *model.Rental) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(rental).Error
}

func (r *rentalRepo) Update(rental *model.Rental) error {
	return r.db.Save(rental).Error
}

func (r *rentalRepo) FindAll() ([]model.Rental, error) {
	var rentals []model.Rental
	if err := r.db.Preload("Customer").Preload("Console").
		Order("start_time DESC").
		Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepo) FindActiveByConsole(consoleID uuid.UUID) (*model.Rental, error) {
	var rental model.Rental
	if err := r.db.Preload("Console").
		Where("console_id = ? AND status = ?", consoleID, model.RentalActive).
		First(&rental).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *rentalRepo) FindActive() ([]model.Rental, error) {
	var rentals []model.Rental
	if err := r.db.Preload("Console").
		Where("status = ?", model.RentalActive).
		Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepo) FindRecent(limit int) ([]model.Rental, error) {
	var rentals []model.Rental
	if err := r.db.Preload("Customer").Preload("Console").
		Order("start_time DESC").
		Limit(limit).
		Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}

func (r *rentalRepo) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Rental{}).Where("status = ?", model.RentalActive).Count(&count).Error
	return count, err
}

func (r *rentalRepo) SumRevenue() (float64, error) {
	var total float64
	err := r.db.Model(&model.Rental{}).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&total).Error
	return total, err
}
