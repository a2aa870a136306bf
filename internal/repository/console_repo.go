package repository

import (
	"go-rental-console/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsoleRepository interface {
	FindAll() ([]model.Console, error)
	FindByID(id uuid.UUID) (*model.Console, error)
	Create(console *model.Console) error
	Update(console *model.Console) error
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.ConsoleStatus) error
	Count() (int64, error)
	CountByStatus(status model.ConsoleStatus) (int64, error)
}

type consoleRepo struct {
	db *gorm.DB
}

func NewConsoleRepo(db *gorm.DB) ConsoleRepository {
	return &consoleRepo{db}
}

func (r *consoleRepo) FindAll() ([]model.Console, error) {
	var consoles []model.Console
	if err := r.db.Order("name ASC").Find(&consoles).Error; err != nil {
		return nil, err
	}
	return consoles, nil
}

func (r *consoleRepo) FindByID(id uuid.UUID) (*model.Console, error) {
	var console model.Console
	if err := r.db.First(&console, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &console, nil
}

func (r *consoleRepo) Create(console *model.Console) error {
	return r.db.Create(console).Error
}

func (r *consoleRepo) Update(console *model.Console) error {
	return r.db.Save(console).Error
}

// UpdateStatus runs inside the caller's transaction so status flips stay
// atomic with the rental rows they accompany
func (r *consoleRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.ConsoleStatus) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&model.Console{}).Where("id = ?", id).Update("status", status).Error
}

func (r *consoleRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Console{}).Count(&count).Error
	return count, err
}

func (r *consoleRepo) CountByStatus(status model.ConsoleStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Console{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
