package service

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"go-rental-console/internal/model"
	"go-rental-console/internal/repository"
	"go-rental-console/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrReviewConflict  = errors.New("request has already been reviewed")
	ErrInvalidOutcome  = errors.New("invalid review outcome")
	ErrInvalidCategory = errors.New("invalid request category")
)

// ReviewService is the two-outcome approval workflow shared by rental and
// KYC requests. Both categories go through the same transition guard so the
// single-terminal-transition invariant cannot drift between them.
type ReviewService interface {
	ListRequests(category model.Category) ([]model.ReviewableRequest, error)
	Review(category model.Category, requestID uuid.UUID, outcome model.ReviewOutcome, reviewerID uuid.UUID, note string) (*model.ReviewableRequest, error)
	SubmitRentalRequest(customerID, consoleID uuid.UUID, hours int) (*model.ReviewableRequest, error)
	SubmitKYCRequest(customerID uuid.UUID, photoURL string) (*model.ReviewableRequest, error)
}

type reviewService struct {
	requestRepo  repository.RequestRepository
	customerRepo repository.CustomerRepository
	operatorRepo repository.OperatorRepository
	rentalSvc    RentalService
	wsHub        *ws.Hub
}

func NewReviewService(
	requestRepo repository.RequestRepository,
	customerRepo repository.CustomerRepository,
	operatorRepo repository.OperatorRepository,
	rentalSvc RentalService,
	hub *ws.Hub,
) ReviewService {
	return &reviewService{
		requestRepo:  requestRepo,
		customerRepo: customerRepo,
		operatorRepo: operatorRepo,
		rentalSvc:    rentalSvc,
		wsHub:        hub,
	}
}

func (s *reviewService) ListRequests(category model.Category) ([]model.ReviewableRequest, error) {
	if !validCategory(category) {
		return nil, ErrInvalidCategory
	}
	requests, err := s.requestRepo.FindByCategory(category)
	if err != nil {
		return nil, err
	}
	SortRequestsForDisplay(requests)
	return requests, nil
}

// SortRequestsForDisplay orders requests the way the console lists them:
// the pending bucket before any terminal request, newest first within each
// bucket. Display order is recomputed on every fetch.
func SortRequestsForDisplay(requests []model.ReviewableRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		pi, pj := requests[i].IsPending(), requests[j].IsPending()
		if pi != pj {
			return pi
		}
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}

func (s *reviewService) Review(category model.Category, requestID uuid.UUID, outcome model.ReviewOutcome, reviewerID uuid.UUID, note string) (*model.ReviewableRequest, error) {
	if outcome != model.OutcomeApprove && outcome != model.OutcomeReject {
		return nil, ErrInvalidOutcome
	}
	if !validCategory(category) {
		return nil, ErrInvalidCategory
	}

	request, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		return nil, ErrRequestNotFound
	}
	if request.Category != category {
		return nil, ErrRequestNotFound
	}
	if !request.IsPending() {
		return nil, ErrReviewConflict
	}

	// Approving a rental needs an available console; check before the
	// transition so an unavailable unit leaves the request pending.
	if category == model.CategoryRental && outcome == model.OutcomeApprove {
		if request.ConsoleID == nil {
			return nil, ErrConsoleNotFound
		}
		if err := s.rentalSvc.CheckAvailable(*request.ConsoleID); err != nil {
			return nil, err
		}
	}

	// The conditional update is the real defense against racing reviews:
	// whichever call loses the race affects zero rows and reports a
	// conflict, leaving the winner's attribution and note untouched.
	now := time.Now()
	rows, err := s.requestRepo.MarkReviewed(requestID, outcome.TerminalStatus(), reviewerID, note, now)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrReviewConflict
	}

	s.applySideEffects(request, outcome, note)

	// Reviewer attribution statistics. Failure here must not undo the
	// transition; it is logged by the repository layer's SQL logger.
	_ = s.operatorRepo.IncrementProcessed(reviewerID, category, now.Format("2006-01-02"))

	updated, err := s.requestRepo.FindByID(requestID)
	if err != nil {
		return nil, err
	}

	s.broadcastReviewed(updated)
	return updated, nil
}

// applySideEffects performs the per-category consequences of a terminal
// transition. The transition itself has already happened.
func (s *reviewService) applySideEffects(request *model.ReviewableRequest, outcome model.ReviewOutcome, note string) {
	switch request.Category {
	case model.CategoryRental:
		if outcome == model.OutcomeApprove {
			if _, err := s.rentalSvc.StartFromRequest(request); err != nil {
				// The request is approved but the rental failed to start;
				// the operator resolves this from the console fleet view.
				return
			}
		}
	case model.CategoryKYC:
		status := model.VerificationVerified
		if outcome == model.OutcomeReject {
			status = model.VerificationRejected
		}
		_ = s.customerRepo.UpdateVerification(request.CustomerID, status, note)
	}
}

func (s *reviewService) SubmitRentalRequest(customerID, consoleID uuid.UUID, hours int) (*model.ReviewableRequest, error) {
	request := &model.ReviewableRequest{
		Category:      model.CategoryRental,
		CustomerID:    customerID,
		ConsoleID:     &consoleID,
		SelectedHours: hours,
		Status:        model.StatusPending,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *reviewService) SubmitKYCRequest(customerID uuid.UUID, photoURL string) (*model.ReviewableRequest, error) {
	request := &model.ReviewableRequest{
		Category:   model.CategoryKYC,
		CustomerID: customerID,
		PhotoURL:   photoURL,
		Status:     model.StatusPending,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}
	_ = s.customerRepo.UpdateVerification(customerID, model.VerificationPending, "")
	return request, nil
}

func (s *reviewService) broadcastReviewed(request *model.ReviewableRequest) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":     "request_reviewed",
			"category": request.Category,
			"id":       request.ID,
			"status":   request.Status,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}

func validCategory(category model.Category) bool {
	for _, c := range model.Categories {
		if c == category {
			return true
		}
	}
	return false
}
