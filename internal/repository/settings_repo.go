package repository

import (
	"go-rental-console/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*model.Settings, error)
	Update(settings *model.Settings) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db}
}

func (r *settingsRepo) Get() (*model.Settings, error) {
	settings := model.Settings{ID: model.SettingsID}
	if err := r.db.FirstOrCreate(&settings, model.Settings{ID: model.SettingsID}).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepo) Update(settings *model.Settings) error {
	settings.ID = model.SettingsID
	return r.db.Save(settings).Error
}
