package service

import (
	"testing"

	"go-rental-console/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeOverrideRepo mirrors the one-record-per-date, replace-wholesale
// semantics of the SQL upsert
type fakeOverrideRepo struct {
	byDate map[string]model.CalendarOverride
}

func newFakeOverrideRepo() *fakeOverrideRepo {
	return &fakeOverrideRepo{byDate: make(map[string]model.CalendarOverride)}
}

func (f *fakeOverrideRepo) FindAll() ([]model.CalendarOverride, error) {
	var out []model.CalendarOverride
	for _, o := range f.byDate {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOverrideRepo) FindByDate(date string) (*model.CalendarOverride, error) {
	o, ok := f.byDate[date]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &o, nil
}

func (f *fakeOverrideRepo) Upsert(override *model.CalendarOverride) error {
	f.byDate[override.Date] = *override
	return nil
}

func (f *fakeOverrideRepo) DeleteByDate(date string) error {
	delete(f.byDate, date)
	return nil
}

func intPtr(v int) *int { return &v }

func TestSave_DiscountThenBlackoutReplacesWholesale(t *testing.T) {
	svc := NewOverrideService(newFakeOverrideRepo())

	require.NoError(t, svc.Save(OverrideInput{
		Date:        "2025-12-25",
		Type:        model.OverrideDiscount,
		Value:       intPtr(30),
		Description: "Holiday",
	}))

	// Switching the date to blackout must not leave the stale discount
	// value or description behind.
	require.NoError(t, svc.Save(OverrideInput{
		Date: "2025-12-25",
		Type: model.OverrideBlackout,
	}))

	stored, err := svc.Get("2025-12-25")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.OverrideBlackout, stored.Type)
	assert.Zero(t, stored.Value)
	assert.Empty(t, stored.Description)
}

func TestSave_DiscountValidation(t *testing.T) {
	svc := NewOverrideService(newFakeOverrideRepo())

	err := svc.Save(OverrideInput{Date: "2025-06-01", Type: model.OverrideDiscount})
	assert.ErrorIs(t, err, ErrDiscountValueRequired)

	err = svc.Save(OverrideInput{Date: "2025-06-01", Type: model.OverrideDiscount, Value: intPtr(101)})
	assert.ErrorIs(t, err, ErrDiscountValueRange)

	err = svc.Save(OverrideInput{Date: "2025-06-01", Type: model.OverrideDiscount, Value: intPtr(-1)})
	assert.ErrorIs(t, err, ErrDiscountValueRange)

	// Validation happens before any write.
	stored, _ := svc.Get("2025-06-01")
	assert.Nil(t, stored)
}

func TestSave_BlackoutIgnoresSuppliedValue(t *testing.T) {
	svc := NewOverrideService(newFakeOverrideRepo())

	require.NoError(t, svc.Save(OverrideInput{
		Date:  "2025-06-02",
		Type:  model.OverrideBlackout,
		Value: intPtr(55),
	}))

	stored, err := svc.Get("2025-06-02")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Zero(t, stored.Value)
}

func TestSave_InvalidDateAndType(t *testing.T) {
	svc := NewOverrideService(newFakeOverrideRepo())

	err := svc.Save(OverrideInput{Date: "25-12-2025", Type: model.OverrideBlackout})
	assert.ErrorIs(t, err, ErrOverrideDateInvalid)

	err = svc.Save(OverrideInput{Date: "2025-12-25", Type: "closed"})
	assert.ErrorIs(t, err, ErrOverrideTypeInvalid)
}

func TestSave_DeleteIsIdempotent(t *testing.T) {
	svc := NewOverrideService(newFakeOverrideRepo())

	// Removing a date with no record succeeds without error.
	require.NoError(t, svc.Save(OverrideInput{Date: "2099-01-01", Delete: true}))

	require.NoError(t, svc.Save(OverrideInput{Date: "2099-01-01", Type: model.OverrideBlackout}))
	require.NoError(t, svc.Save(OverrideInput{Date: "2099-01-01", Delete: true}))
	require.NoError(t, svc.Save(OverrideInput{Date: "2099-01-01", Delete: true}))

	stored, err := svc.Get("2099-01-01")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestCheckDate_DefaultsToToday(t *testing.T) {
	repo := newFakeOverrideRepo()
	svc := NewOverrideService(repo)

	// No rule anywhere: today resolves to absent, not an error.
	stored, err := svc.CheckDate("")
	require.NoError(t, err)
	assert.Nil(t, stored)
}
