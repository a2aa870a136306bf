package authz

import (
	"testing"

	"go-rental-console/internal/model"

	"github.com/stretchr/testify/assert"
)

func operatorWith(codes ...string) *model.Operator {
	op := &model.Operator{}
	for _, code := range codes {
		op.Capabilities = append(op.Capabilities, model.Capability{Code: code})
	}
	return op
}

func TestDecide_WildcardGrantsEverything(t *testing.T) {
	op := operatorWith(model.CapabilityAll)

	for _, capability := range []string{
		model.CapabilityDashboard,
		model.CapabilityConsoles,
		model.CapabilityRentals,
		model.CapabilityFinance,
		model.CapabilityUsers,
		model.CapabilitySettings,
	} {
		assert.Equal(t, DecisionGranted, Decide(op, capability), "capability %s", capability)
		assert.True(t, IsAuthorized(op, capability))
	}
}

func TestDecide_SpecificCapabilities(t *testing.T) {
	op := operatorWith(model.CapabilityRentals, model.CapabilityFinance)

	assert.Equal(t, DecisionGranted, Decide(op, model.CapabilityRentals))
	assert.Equal(t, DecisionGranted, Decide(op, model.CapabilityFinance))
	assert.Equal(t, DecisionDenied, Decide(op, model.CapabilityUsers))
	assert.Equal(t, DecisionDenied, Decide(op, model.CapabilitySettings))
}

func TestDecide_DashboardAlwaysGranted(t *testing.T) {
	op := operatorWith() // no capabilities at all

	assert.Equal(t, DecisionGranted, Decide(op, model.CapabilityDashboard))
	assert.True(t, IsAuthorized(op, model.CapabilityDashboard))
}

func TestDecide_NilOperatorIsUnknownAndFailOpen(t *testing.T) {
	// Session bootstrap: operator not resolved yet. The gate reports Unknown,
	// and IsAuthorized treats that as access.
	for _, capability := range []string{
		model.CapabilityDashboard,
		model.CapabilitySettings,
		model.CapabilityFinance,
	} {
		assert.Equal(t, DecisionUnknown, Decide(nil, capability))
		assert.True(t, IsAuthorized(nil, capability))
	}
}

func TestDecideCodes_EmptySetDeniesNonDashboard(t *testing.T) {
	assert.Equal(t, DecisionDenied, DecideCodes(nil, model.CapabilityRentals))
	assert.Equal(t, DecisionGranted, DecideCodes(nil, model.CapabilityDashboard))
}

func TestVisibleCategories(t *testing.T) {
	tests := []struct {
		name string
		op   *model.Operator
		want []model.Category
	}{
		{
			name: "wildcard sees every category",
			op:   operatorWith(model.CapabilityAll),
			want: []model.Category{model.CategoryRental, model.CategoryKYC},
		},
		{
			name: "rentals only",
			op:   operatorWith(model.CapabilityRentals),
			want: []model.Category{model.CategoryRental},
		},
		{
			name: "users only",
			op:   operatorWith(model.CapabilityUsers),
			want: []model.Category{model.CategoryKYC},
		},
		{
			name: "no request sections",
			op:   operatorWith(model.CapabilityFinance),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleCategories(tt.op))
		})
	}
}

func TestSectionCategory(t *testing.T) {
	assert.Equal(t, model.CapabilityRentals, SectionCategory(model.CategoryRental))
	assert.Equal(t, model.CapabilityUsers, SectionCategory(model.CategoryKYC))
}
