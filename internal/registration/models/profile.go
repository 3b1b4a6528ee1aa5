package models

import (
	"time"

	id "partnerhub/pkg/domain"
	dErrors "partnerhub/pkg/domain-errors"
)

// Classification is a user's resolved platform role.
type Classification string

const (
	// ClassificationPending is the provisional state assigned at signup.
	ClassificationPending Classification = "PENDING"
	// ClassificationCompany marks a registered company.
	ClassificationCompany Classification = "COMPANY"
	// ClassificationBDIndividual marks an individual BD partner.
	ClassificationBDIndividual Classification = "BD_PARTNER_INDIVIDUAL"
	// ClassificationBDOrganization marks an organizational BD partner.
	ClassificationBDOrganization Classification = "BD_PARTNER_ORGANIZATION"
)

// IsTerminal reports whether the classification can never change again.
// Every non-PENDING classification is terminal; there is no reset path.
func (c Classification) IsTerminal() bool {
	return c != ClassificationPending
}

// CanTransitionTo reports whether the one-way PENDING -> terminal
// transition is allowed.
func (c Classification) CanTransitionTo(target Classification) bool {
	if c != ClassificationPending {
		return false
	}
	switch target {
	case ClassificationCompany, ClassificationBDIndividual, ClassificationBDOrganization:
		return true
	}
	return false
}

// ProfileStatus is the lifecycle flag on a user profile.
type ProfileStatus string

const (
	// StatusDraft marks a profile created at signup, before registration.
	StatusDraft ProfileStatus = "DRAFT"
	// StatusActive marks a profile whose registration completed.
	StatusActive ProfileStatus = "ACTIVE"
)

// UserProfile is the aggregate root: one row per platform user.
//
// Invariants:
//   - exactly one row per external user identity
//   - Classification transitions only PENDING -> terminal, exactly once
//   - never deleted by this subsystem
//
// The transition is applied through CanClassify/ApplyClassification so
// stores can hold their lock (mutex or conditional UPDATE) across
// validation and mutation. The store-level guard is authoritative: a
// conditional update on classification = PENDING that affects zero
// rows means another registration won the race.
type UserProfile struct {
	ID             id.ProfileID   `json:"id"`
	UserID         id.UserID      `json:"user_id"`
	Classification Classification `json:"classification"`
	Status         ProfileStatus  `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewUserProfile builds the provisional profile created at signup.
func NewUserProfile(profileID id.ProfileID, userID id.UserID, now time.Time) (*UserProfile, error) {
	if userID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	return &UserProfile{
		ID:             profileID,
		UserID:         userID,
		Classification: ClassificationPending,
		Status:         StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CanClassify checks the one-way transition rule.
func (p *UserProfile) CanClassify(target Classification) error {
	if !p.Classification.CanTransitionTo(target) {
		if p.Classification.IsTerminal() {
			return dErrors.New(dErrors.CodeConflict, "profile already exists")
		}
		return dErrors.Newf(dErrors.CodeInvalidInput, "invalid classification target %q", target)
	}
	return nil
}

// ApplyClassification performs the transition and activates the
// profile. Call CanClassify first.
func (p *UserProfile) ApplyClassification(target Classification, now time.Time) {
	p.Classification = target
	p.Status = StatusActive
	p.UpdatedAt = now
}
