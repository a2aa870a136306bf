package repository

import (
	"go-rental-console/internal/model"

	"gorm.io/gorm"
)

type CapabilityRepository interface {
	FindByCode(code string) (*model.Capability, error)
	FindByCodes(codes []string) ([]model.Capability, error)
	FindAll() ([]model.Capability, error)
	SeedDefaults() error
}

type capabilityRepo struct {
	db *gorm.DB
}

func NewCapabilityRepo(db *gorm.DB) CapabilityRepository {
	return &capabilityRepo{db}
}

func (r *capabilityRepo) FindByCode(code string) (*model.Capability, error) {
	var capability model.Capability
	if err := r.db.Where("code = ?", code).First(&capability).Error; err != nil {
		return nil, err
	}
	return &capability, nil
}

func (r *capabilityRepo) FindByCodes(codes []string) ([]model.Capability, error) {
	var capabilities []model.Capability
	if err := r.db.Where("code IN ?", codes).Find(&capabilities).Error; err != nil {
		return nil, err
	}
	return capabilities, nil
}

func (r *capabilityRepo) FindAll() ([]model.Capability, error) {
	var capabilities []model.Capability
	if err := r.db.Find(&capabilities).Error; err != nil {
		return nil, err
	}
	return capabilities, nil
}

// SeedDefaults creates the capability catalog if it doesn't exist
func (r *capabilityRepo) SeedDefaults() error {
	for _, c := range model.DefaultCapabilities {
		var existing model.Capability
		if err := r.db.Where("code = ?", c.Code).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := r.db.Create(&c).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
