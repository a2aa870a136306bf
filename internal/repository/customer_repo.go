package repository

import (
	"go-rental-console/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindAll() ([]model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	Create(customer *model.Customer) error
	Update(customer *model.Customer) error
	UpdateVerification(id uuid.UUID, status model.VerificationStatus, note string) error
	Count() (int64, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	if err := r.db.Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) UpdateVerification(id uuid.UUID, status model.VerificationStatus, note string) error {
	return r.db.Model(&model.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"verification":      status,
		"verification_note": note,
	}).Error
}

func (r *customerRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Customer{}).Count(&count).Error
	return count, err
}
