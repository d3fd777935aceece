package models

import "time"

// User is the single session user. Read-only in this scope; the
// subscription plan gates media limits and AI analysis availability.
type User struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	SubscriptionPlan SubscriptionPlan `json:"subscription_plan"`
	MemberSince      time.Time        `json:"member_since"`
}

// IsPremium reports whether the user is on the premium plan.
func (u *User) IsPremium() bool {
	return u.SubscriptionPlan == PlanPremium
}

// MediaLimit returns the per-entry media attachment cap for the user's
// plan, or -1 for unlimited.
func (u *User) MediaLimit() int {
	if u.IsPremium() {
		return -1
	}
	return FreePlanMediaLimit
}
