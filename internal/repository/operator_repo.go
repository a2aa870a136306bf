package repository

import (
	"go-rental-console/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OperatorRepository interface {
	FindByUsername(username string) (*model.Operator, error)
	FindByID(id uuid.UUID) (*model.Operator, error)
	Create(operator *model.Operator) error
	Update(operator *model.Operator) error
	Delete(id uuid.UUID) error
	FindAll() ([]model.Operator, error)
	CountByRoleCode(code string) (int64, error)
	UpdateCapabilities(operatorID uuid.UUID, capabilities []model.Capability) error
	UpdateTokenVersion(operatorID uuid.UUID, version string) error
	UpdateLastSeen(operatorID uuid.UUID) error

	// Reviewer attribution: bump the lifetime counter for the category and
	// the per-day action row in one transaction.
	IncrementProcessed(operatorID uuid.UUID, category model.Category, day string) error
	DailyReport(day string) ([]model.DailyReportEntry, error)
}

type operatorRepo struct {
	db *gorm.DB
}

func NewOperatorRepo(db *gorm.DB) OperatorRepository {
	return &operatorRepo{db}
}

func (r *operatorRepo) FindByUsername(username string) (*model.Operator, error) {
	var operator model.Operator
	if err := r.db.Preload("Role").Preload("Capabilities").Where("username = ?", username).First(&operator).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepo) FindByID(id uuid.UUID) (*model.Operator, error) {
	var operator model.Operator
	if err := r.db.Preload("Role").Preload("Capabilities").First(&operator, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepo) Create(operator *model.Operator) error {
	return r.db.Create(operator).Error
}

func (r *operatorRepo) Update(operator *model.Operator) error {
	return r.db.Save(operator).Error
}

func (r *operatorRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Operator{}, "id = ?", id).Error
}

func (r *operatorRepo) FindAll() ([]model.Operator, error) {
	var operators []model.Operator
	if err := r.db.Preload("Role").Preload("Capabilities").Order("created_at ASC").Find(&operators).Error; err != nil {
		return nil, err
	}
	return operators, nil
}

func (r *operatorRepo) CountByRoleCode(code string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Operator{}).
		Joins("JOIN roles ON roles.id = operators.role_id").
		Where("roles.code = ?", code).
		Count(&count).Error
	return count, err
}

func (r *operatorRepo) UpdateCapabilities(operatorID uuid.UUID, capabilities []model.Capability) error {
	var operator model.Operator
	if err := r.db.First(&operator, "id = ?", operatorID).Error; err != nil {
		return err
	}
	return r.db.Model(&operator).Association("Capabilities").Replace(capabilities)
}

func (r *operatorRepo) UpdateTokenVersion(operatorID uuid.UUID, version string) error {
	return r.db.Model(&model.Operator{}).Where("id = ?", operatorID).Update("token_version", version).Error
}

func (r *operatorRepo) UpdateLastSeen(operatorID uuid.UUID) error {
	return r.db.Model(&model.Operator{}).Where("id = ?", operatorID).Update("last_seen_at", gorm.Expr("NOW()")).Error
}

func (r *operatorRepo) IncrementProcessed(operatorID uuid.UUID, category model.Category, day string) error {
	counter := "processed_rentals"
	if category == model.CategoryKYC {
		counter = "processed_kyc"
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Operator{}).Where("id = ?", operatorID).
			Update(counter, gorm.Expr(counter+" + 1")).Error; err != nil {
			return err
		}

		action := model.OperatorAction{OperatorID: operatorID, Day: day, Count: 1}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "operator_id"}, {Name: "day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("operator_actions.count + 1")}),
		}).Create(&action).Error
	})
}

func (r *operatorRepo) DailyReport(day string) ([]model.DailyReportEntry, error) {
	operators, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	var actions []model.OperatorAction
	if err := r.db.Where("day = ?", day).Find(&actions).Error; err != nil {
		return nil, err
	}
	todayByOperator := make(map[uuid.UUID]int64, len(actions))
	for _, a := range actions {
		todayByOperator[a.OperatorID] = a.Count
	}

	report := make([]model.DailyReportEntry, 0, len(operators))
	for _, op := range operators {
		roleCode := ""
		if op.Role != nil {
			roleCode = op.Role.Code
		}
		report = append(report, model.DailyReportEntry{
			ID:               op.ID,
			FullName:         op.FullName,
			AvatarURL:        op.AvatarURL,
			RoleCode:         roleCode,
			TodayActions:     todayByOperator[op.ID],
			ProcessedRentals: op.ProcessedRentals,
			ProcessedKYC:     op.ProcessedKYC,
		})
	}
	return report, nil
}
