package service

import (
	"errors"
	"time"

	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"
	"go-rental-console/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrOverrideDateInvalid   = errors.New("date must be in YYYY-MM-DD format")
	ErrOverrideTypeInvalid   = errors.New("override type must be discount or blackout")
	ErrDiscountValueRequired = errors.New("discount value is required")
	ErrDiscountValueRange    = errors.New("discount value must be between 0 and 100")
)

// OverrideInput is the calendar write payload. Deletion travels as an
// explicit flag on the write rather than a separate verb.
type OverrideInput struct {
	Date        string             `json:"date" validate:"required,iso_date"`
	Type        model.OverrideType `json:"type"`
	Value       *int               `json:"value"`
	Description string             `json:"description"`
	Delete      bool               `json:"delete"`
}

// OverrideService is the per-date scheduling rule store: at most one rule
// per date, replaced wholesale on every write
type OverrideService interface {
	Save(input OverrideInput) error
	Get(date string) (*model.CalendarOverride, error)
	List() ([]model.CalendarOverride, error)

	// CheckDate resolves the rule for a date, defaulting to today when the
	// date is empty. A date with no rule returns nil, not an error.
	CheckDate(date string) (*model.CalendarOverride, error)
}

type overrideService struct {
	overrideRepo repository.OverrideRepository
}

func NewOverrideService(overrideRepo repository.OverrideRepository) OverrideService {
	return &overrideService{overrideRepo: overrideRepo}
}

func (s *overrideService) Save(input OverrideInput) error {
	if errs := validator.ValidateStruct(&input); len(errs) > 0 {
		return ErrOverrideDateInvalid
	}

	if input.Delete {
		// Removing a date with no record is a no-op, not an error.
		return s.overrideRepo.DeleteByDate(input.Date)
	}

	override := &model.CalendarOverride{
		Date:        input.Date,
		Type:        input.Type,
		Description: input.Description,
	}

	switch input.Type {
	case model.OverrideDiscount:
		if input.Value == nil {
			return ErrDiscountValueRequired
		}
		if *input.Value < 0 || *input.Value > 100 {
			return ErrDiscountValueRange
		}
		override.Value = *input.Value
	case model.OverrideBlackout:
		// A supplied value is ignored; the stored record carries none.
		override.Value = 0
	default:
		return ErrOverrideTypeInvalid
	}

	return s.overrideRepo.Upsert(override)
}

func (s *overrideService) Get(date string) (*model.CalendarOverride, error) {
	override, err := s.overrideRepo.FindByDate(date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return override, nil
}

func (s *overrideService) List() ([]model.CalendarOverride, error) {
	return s.overrideRepo.FindAll()
}

func (s *overrideService) CheckDate(date string) (*model.CalendarOverride, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	return s.Get(date)
}
