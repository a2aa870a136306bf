package repository

import (
	"go-rental-console/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OverrideRepository interface {
	FindAll() ([]model.CalendarOverride, error)
	FindByDate(date string) (*model.CalendarOverride, error)

	// Upsert replaces the record for the date wholesale: every column is
	// overwritten, so switching a date from discount to blackout leaves no
	// stale value or description behind.
	Upsert(override *model.CalendarOverride) error

	// DeleteByDate is idempotent: removing a date with no record is a no-op
	DeleteByDate(date string) error
}

type overrideRepo struct {
	db *gorm.DB
}

func NewOverrideRepo(db *gorm.DB) OverrideRepository {
	return &overrideRepo{db}
}

func (r *overrideRepo) FindAll() ([]model.CalendarOverride, error) {
	var overrides []model.CalendarOverride
	if err := r.db.Order("date ASC").Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *overrideRepo) FindByDate(date string) (*model.CalendarOverride, error) {
	var override model.CalendarOverride
	if err := r.db.Where("date = ?", date).First(&override).Error; err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *overrideRepo) Upsert(override *model.CalendarOverride) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "value", "description"}),
	}).Create(override).Error
}

func (r *overrideRepo) DeleteByDate(date string) error {
	return r.db.Where("date = ?", date).Delete(&model.CalendarOverride{}).Error
}
