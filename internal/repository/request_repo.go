package repository

import (
	"context"
	"time"

	"go-rental-console/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(request *model.ReviewableRequest) error
	FindByID(id uuid.UUID) (*model.ReviewableRequest, error)

	// FindByCategory returns requests in storage order; display ordering is
	// the service layer's contract and is recomputed on every fetch.
	FindByCategory(category model.Category) ([]model.ReviewableRequest, error)

	// MarkReviewed performs the single pending -> terminal transition as a
	// conditional update. Returns the number of rows transitioned: zero
	// means the request was not pending (or does not exist) and nothing
	// was mutated.
	MarkReviewed(id uuid.UUID, status model.RequestStatus, reviewerID uuid.UUID, note string, at time.Time) (int64, error)

	// PendingCounts returns the pending-request count per category for the
	// given category set. Categories with no pending rows are reported as
	// zero, not omitted.
	PendingCounts(ctx context.Context, categories []model.Category) (map[model.Category]int64, error)
}

type requestRepo struct {
	db *gorm.DB
}

func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db}
}

func (r *requestRepo) Create(request *model.ReviewableRequest) error {
	return r.db.Create(request).Error
}

func (r *requestRepo) FindByID(id uuid.UUID) (*model.ReviewableRequest, error) {
	var request model.ReviewableRequest
	if err := r.db.Preload("Customer").Preload("Console").Preload("Reviewer").
		First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) FindByCategory(category model.Category) ([]model.ReviewableRequest, error) {
	var requests []model.ReviewableRequest
	if err := r.db.Preload("Customer").Preload("Console").Preload("Reviewer").
		Where("category = ?", category).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepo) MarkReviewed(id uuid.UUID, status model.RequestStatus, reviewerID uuid.UUID, note string, at time.Time) (int64, error) {
	res := r.db.Model(&model.ReviewableRequest{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewer_id": reviewerID,
			"reviewed_at": at,
			"note":        note,
		})
	return res.RowsAffected, res.Error
}

func (r *requestRepo) PendingCounts(ctx context.Context, categories []model.Category) (map[model.Category]int64, error) {
	type row struct {
		Category model.Category
		Count    int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).Model(&model.ReviewableRequest{}).
		Select("category, COUNT(*) AS count").
		Where("status = ? AND category IN ?", model.StatusPending, categories).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[model.Category]int64, len(categories))
	for _, c := range categories {
		counts[c] = 0
	}
	for _, rw := range rows {
		counts[rw.Category] = rw.Count
	}
	return counts, nil
}
