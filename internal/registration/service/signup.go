package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"partnerhub/internal/audit"
	"partnerhub/internal/registration/models"
	id "partnerhub/pkg/domain"
	dErrors "partnerhub/pkg/domain-errors"
	"partnerhub/pkg/platform/sentinel"
	"partnerhub/pkg/requestcontext"
)

func newProfileID() id.ProfileID { return id.ProfileID(uuid.New()) }

// EnsureProfile is the signup hook: it creates the provisional PENDING
// profile for a newly signed-up user. Calling it again for the same
// user returns the existing profile unchanged, whatever its
// classification.
func (r *Registrar) EnsureProfile(ctx context.Context, userID id.UserID) (*models.UserProfile, error) {
	if userID.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	now := requestcontext.Now(ctx)
	candidate, err := models.NewUserProfile(r.newID(), userID, now)
	if err != nil {
		return nil, err
	}

	stored, err := r.store.CreateIfAbsent(ctx, candidate)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "profile creation failed")
	}

	if stored.ID == candidate.ID {
		r.metrics.IncrementProfilesCreated()
		r.logger.InfoContext(ctx, "provisional profile created",
			"user_id", userID,
			"request_id", requestcontext.RequestID(ctx),
		)
		if r.audit != nil {
			r.audit.Emit(ctx, audit.Event{
				Timestamp: now,
				UserID:    userID,
				Action:    audit.ActionProfileCreated,
				RequestID: requestcontext.RequestID(ctx),
			})
		}
	}
	return stored, nil
}

// ProfileStatus returns the caller's current profile, for the
// post-login classification check.
func (r *Registrar) ProfileStatus(ctx context.Context, userID id.UserID) (*models.UserProfile, error) {
	if userID.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	profile, err := r.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, r.translateNotFound(err)
	}
	return profile, nil
}

func (r *Registrar) translateNotFound(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "profile not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "profile lookup failed")
}
