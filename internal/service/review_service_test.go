package service

import (
	"context"
	"testing"
	"time"

	"go-rental-console/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequestRepo keeps requests in memory and enforces the same
// pending-only conditional transition the SQL repository uses
type fakeRequestRepo struct {
	requests map[uuid.UUID]*model.ReviewableRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*model.ReviewableRequest)}
}

func (f *fakeRequestRepo) Create(r *model.ReviewableRequest) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	f.requests[r.ID] = r
	return nil
}

func (f *fakeRequestRepo) FindByID(id uuid.UUID) (*model.ReviewableRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRequestRepo) FindByCategory(category model.Category) ([]model.ReviewableRequest, error) {
	var out []model.ReviewableRequest
	for _, r := range f.requests {
		if r.Category == category {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) MarkReviewed(id uuid.UUID, status model.RequestStatus, reviewerID uuid.UUID, note string, at time.Time) (int64, error) {
	r, ok := f.requests[id]
	if !ok || r.Status != model.StatusPending {
		return 0, nil
	}
	r.Status = status
	r.ReviewerID = &reviewerID
	r.ReviewedAt = &at
	r.Note = note
	return 1, nil
}

func (f *fakeRequestRepo) PendingCounts(ctx context.Context, categories []model.Category) (map[model.Category]int64, error) {
	counts := make(map[model.Category]int64, len(categories))
	for _, c := range categories {
		counts[c] = 0
	}
	for _, r := range f.requests {
		if r.Status == model.StatusPending {
			if _, ok := counts[r.Category]; ok {
				counts[r.Category]++
			}
		}
	}
	return counts, nil
}

type fakeCustomerRepo struct {
	verifications map[uuid.UUID]model.VerificationStatus
	notes         map[uuid.UUID]string
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		verifications: make(map[uuid.UUID]model.VerificationStatus),
		notes:         make(map[uuid.UUID]string),
	}
}

func (f *fakeCustomerRepo) FindAll() ([]model.Customer, error)               { return nil, nil }
func (f *fakeCustomerRepo) FindByID(id uuid.UUID) (*model.Customer, error)   { return nil, nil }
func (f *fakeCustomerRepo) Create(c *model.Customer) error                   { return nil }
func (f *fakeCustomerRepo) Update(c *model.Customer) error                   { return nil }
func (f *fakeCustomerRepo) Count() (int64, error)                            { return 0, nil }
func (f *fakeCustomerRepo) UpdateVerification(id uuid.UUID, status model.VerificationStatus, note string) error {
	f.verifications[id] = status
	f.notes[id] = note
	return nil
}

type fakeOperatorRepo struct {
	processed map[uuid.UUID]map[model.Category]int64
}

func newFakeOperatorRepo() *fakeOperatorRepo {
	return &fakeOperatorRepo{processed: make(map[uuid.UUID]map[model.Category]int64)}
}

func (f *fakeOperatorRepo) FindByUsername(string) (*model.Operator, error)      { return nil, nil }
func (f *fakeOperatorRepo) FindByID(uuid.UUID) (*model.Operator, error)         { return nil, nil }
func (f *fakeOperatorRepo) Create(*model.Operator) error                        { return nil }
func (f *fakeOperatorRepo) Update(*model.Operator) error                        { return nil }
func (f *fakeOperatorRepo) Delete(uuid.UUID) error                              { return nil }
func (f *fakeOperatorRepo) FindAll() ([]model.Operator, error)                  { return nil, nil }
func (f *fakeOperatorRepo) CountByRoleCode(string) (int64, error)               { return 0, nil }
func (f *fakeOperatorRepo) UpdateCapabilities(uuid.UUID, []model.Capability) error { return nil }
func (f *fakeOperatorRepo) UpdateTokenVersion(uuid.UUID, string) error          { return nil }
func (f *fakeOperatorRepo) UpdateLastSeen(uuid.UUID) error                      { return nil }
func (f *fakeOperatorRepo) DailyReport(string) ([]model.DailyReportEntry, error) { return nil, nil }
func (f *fakeOperatorRepo) IncrementProcessed(operatorID uuid.UUID, category model.Category, day string) error {
	if f.processed[operatorID] == nil {
		f.processed[operatorID] = make(map[model.Category]int64)
	}
	f.processed[operatorID][category]++
	return nil
}

type fakeRentalService struct {
	availability map[uuid.UUID]error
	started      []uuid.UUID // request IDs whose rentals were started
}

func newFakeRentalService() *fakeRentalService {
	return &fakeRentalService{availability: make(map[uuid.UUID]error)}
}

func (f *fakeRentalService) CheckAvailable(consoleID uuid.UUID) error {
	return f.availability[consoleID]
}

func (f *fakeRentalService) StartFromRequest(request *model.ReviewableRequest) (*model.Rental, error) {
	f.started = append(f.started, request.ID)
	return &model.Rental{ConsoleID: *request.ConsoleID}, nil
}

func (f *fakeRentalService) StartManual(uuid.UUID, int) (*model.Rental, error) { return nil, nil }
func (f *fakeRentalService) Terminate(uuid.UUID) (*TerminationSummary, error)  { return nil, nil }
func (f *fakeRentalService) History() ([]model.RentalResponse, error)          { return nil, nil }

type reviewFixture struct {
	svc       ReviewService
	requests  *fakeRequestRepo
	customers *fakeCustomerRepo
	operators *fakeOperatorRepo
	rentals   *fakeRentalService
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		requests:  newFakeRequestRepo(),
		customers: newFakeCustomerRepo(),
		operators: newFakeOperatorRepo(),
		rentals:   newFakeRentalService(),
	}
	f.svc = NewReviewService(f.requests, f.customers, f.operators, f.rentals, nil)
	return f
}

func (f *reviewFixture) addRequest(category model.Category, status model.RequestStatus, createdAt time.Time) *model.ReviewableRequest {
	consoleID := uuid.New()
	r := &model.ReviewableRequest{
		Category:   category,
		CustomerID: uuid.New(),
		Status:     status,
		ConsoleID:  &consoleID,
	}
	_ = f.requests.Create(r)
	r.CreatedAt = createdAt
	return r
}

func TestReview_ApproveKYCRecordsAttribution(t *testing.T) {
	f := newReviewFixture()
	req := f.addRequest(model.CategoryKYC, model.StatusPending, time.Now())
	reviewer := uuid.New()

	updated, err := f.svc.Review(model.CategoryKYC, req.ID, model.OutcomeApprove, reviewer, "documents look fine")

	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, updated.Status)
	require.NotNil(t, updated.ReviewerID)
	assert.Equal(t, reviewer, *updated.ReviewerID)
	assert.NotNil(t, updated.ReviewedAt)
	assert.Equal(t, "documents look fine", updated.Note)

	assert.Equal(t, model.VerificationVerified, f.customers.verifications[req.CustomerID])
	assert.Equal(t, int64(1), f.operators.processed[reviewer][model.CategoryKYC])
}

func TestReview_RejectKYCSyncsCustomerNote(t *testing.T) {
	f := newReviewFixture()
	req := f.addRequest(model.CategoryKYC, model.StatusPending, time.Now())

	_, err := f.svc.Review(model.CategoryKYC, req.ID, model.OutcomeReject, uuid.New(), "photo unreadable")

	require.NoError(t, err)
	assert.Equal(t, model.VerificationRejected, f.customers.verifications[req.CustomerID])
	assert.Equal(t, "photo unreadable", f.customers.notes[req.CustomerID])
}

func TestReview_AlreadyReviewedIsConflictAndKeepsFirstTransition(t *testing.T) {
	f := newReviewFixture()
	req := f.addRequest(model.CategoryKYC, model.StatusPending, time.Now())
	firstReviewer := uuid.New()

	_, err := f.svc.Review(model.CategoryKYC, req.ID, model.OutcomeApprove, firstReviewer, "first")
	require.NoError(t, err)

	// Double submission from a slow UI: second review must conflict and
	// leave the first reviewer's attribution and note untouched.
	_, err = f.svc.Review(model.CategoryKYC, req.ID, model.OutcomeReject, uuid.New(), "second")
	assert.ErrorIs(t, err, ErrReviewConflict)

	stored, _ := f.requests.FindByID(req.ID)
	assert.Equal(t, model.StatusApproved, stored.Status)
	assert.Equal(t, firstReviewer, *stored.ReviewerID)
	assert.Equal(t, "first", stored.Note)
	assert.Equal(t, int64(1), f.operators.processed[firstReviewer][model.CategoryKYC])
}

func TestReview_ApproveRentalStartsRental(t *testing.T) {
	f := newReviewFixture()
	req := f.addRequest(model.CategoryRental, model.StatusPending, time.Now())
	reviewer := uuid.New()

	updated, err := f.svc.Review(model.CategoryRental, req.ID, model.OutcomeApprove, reviewer, "")

	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, updated.Status)
	assert.Equal(t, []uuid.UUID{req.ID}, f.rentals.started)
	assert.Equal(t, int64(1), f.operators.processed[reviewer][model.CategoryRental])
}

func TestReview_RentalApproveFailsWhenConsoleUnavailable(t *testing.T) {
	f := newReviewFixture()
	req := f.addRequest(model.CategoryRental, model.StatusPending, time.Now())
	f.rentals.availability[*req.ConsoleID] = ErrConsoleUnavailable

	_, err := f.svc.Review(model.CategoryRental, req.ID, model.OutcomeApprove, uuid.New(), "")

	assert.ErrorIs(t, err, ErrConsoleUnavailable)
	stored, _ := f.requests.FindByID(req.ID)
	assert.Equal(t, model.StatusPending, stored.Status, "request must stay pending")
	assert.Empty(t, f.rentals.started)
}

func TestReview_RejectRentalDoesNotStartRental(t *testing.T) {
	f := newReviewFixture()
	req := f.addRequest(model.CategoryRental, model.StatusPending, time.Now())

	updated, err := f.svc.Review(model.CategoryRental, req.ID, model.OutcomeReject, uuid.New(), "no units")

	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, updated.Status)
	assert.Empty(t, f.rentals.started)
}

func TestReview_InvalidOutcomeAndCategory(t *testing.T) {
	f := newReviewFixture()
	req := f.addRequest(model.CategoryRental, model.StatusPending, time.Now())

	_, err := f.svc.Review(model.CategoryRental, req.ID, "escalate", uuid.New(), "")
	assert.ErrorIs(t, err, ErrInvalidOutcome)

	_, err = f.svc.Review("returns", req.ID, model.OutcomeApprove, uuid.New(), "")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	// Reviewing through the wrong category must not find the request.
	_, err = f.svc.Review(model.CategoryKYC, req.ID, model.OutcomeApprove, uuid.New(), "")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestReview_UnknownRequest(t *testing.T) {
	f := newReviewFixture()

	_, err := f.svc.Review(model.CategoryRental, uuid.New(), model.OutcomeApprove, uuid.New(), "")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestListRequests_PendingFirstNewestFirst(t *testing.T) {
	f := newReviewFixture()
	t1 := time.Now().Add(-3 * time.Hour)
	t2 := time.Now().Add(-2 * time.Hour)
	t3 := time.Now().Add(-1 * time.Hour)

	approved := f.addRequest(model.CategoryRental, model.StatusApproved, t1)
	oldPending := f.addRequest(model.CategoryRental, model.StatusPending, t2)
	newPending := f.addRequest(model.CategoryRental, model.StatusPending, t3)

	listed, err := f.svc.ListRequests(model.CategoryRental)

	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, newPending.ID, listed[0].ID)
	assert.Equal(t, oldPending.ID, listed[1].ID)
	assert.Equal(t, approved.ID, listed[2].ID)
}

func TestSubmitKYCRequest_MarksCustomerPending(t *testing.T) {
	f := newReviewFixture()
	customerID := uuid.New()

	req, err := f.svc.SubmitKYCRequest(customerID, "/uploads/kyc/photo.jpg")

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, req.Status)
	assert.Equal(t, model.VerificationPending, f.customers.verifications[customerID])
}
