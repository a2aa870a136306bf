// Package authz is the single authorization entry point for the console.
// Every gating site (route middleware, navigation filtering, poller category
// selection) goes through Decide so the wildcard and dashboard rules live in
// exactly one place.
package authz

import "go-rental-console/internal/model"

// Decision is the tri-state outcome of an authorization check.
// Unknown means the operator record has not been resolved yet (session
// bootstrap); callers treat it as granted. This fail-open window mirrors
// the console's login flow, where the gate is "not yet enforced" rather
// than "deny by default".
type Decision int

const (
	DecisionUnknown Decision = iota
	DecisionGranted
	DecisionDenied
)

// Decide reports whether the operator may access the named section.
// A nil operator yields Unknown. The dashboard is always granted, and the
// wildcard capability supersedes every specific check.
func Decide(op *model.Operator, capability string) Decision {
	if op == nil {
		return DecisionUnknown
	}
	return DecideCodes(op.GetCapabilityCodes(), capability)
}

// DecideCodes is the core check over a resolved capability-code set, used
// directly by the route middleware which carries codes in JWT claims.
func DecideCodes(codes []string, capability string) Decision {
	if capability == model.CapabilityDashboard {
		return DecisionGranted
	}
	for _, code := range codes {
		if code == model.CapabilityAll || code == capability {
			return DecisionGranted
		}
	}
	return DecisionDenied
}

// IsAuthorized collapses the tri-state into the boolean the UI consumes:
// everything except an explicit denial is access.
func IsAuthorized(op *model.Operator, capability string) bool {
	return Decide(op, capability) != DecisionDenied
}

// VisibleCategories returns the request categories whose pending counts the
// operator is allowed to observe. Rental requests sit behind the rentals
// section, KYC requests behind the customers/staff section.
func VisibleCategories(op *model.Operator) []model.Category {
	var categories []model.Category
	if IsAuthorized(op, model.CapabilityRentals) {
		categories = append(categories, model.CategoryRental)
	}
	if IsAuthorized(op, model.CapabilityUsers) {
		categories = append(categories, model.CategoryKYC)
	}
	return categories
}

// SectionCategory maps a request category to the capability that gates it
func SectionCategory(category model.Category) string {
	if category == model.CategoryKYC {
		return model.CapabilityUsers
	}
	return model.CapabilityRentals
}
