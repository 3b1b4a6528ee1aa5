package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"partnerhub/internal/registration/models"
	id "partnerhub/pkg/domain"
	"partnerhub/pkg/requestcontext"
)

// RegisterIndividual atomically creates an individual BD partner
// profile. The years-of-experience reference and the country are
// validated before the transaction; the partner email is unique across
// all individual profiles.
func (r *Registrar) RegisterIndividual(ctx context.Context, userID id.UserID, input IndividualInput) (*models.IndividualAggregate, error) {
	now := requestcontext.Now(ctx)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var aggregate models.IndividualAggregate
	profile, err := r.register(ctx, userID, plan{
		target: models.ClassificationBDIndividual,
		uniqueChecks: []uniqueCheck{
			{
				exists: func(ctx context.Context) (bool, error) {
					return r.store.IndividualEmailExists(ctx, email)
				},
				conflict: conflictIndividualEmail,
			},
		},
		refChecks: []func(ctx context.Context) error{
			func(ctx context.Context) error {
				_, err := r.resolver.ResolveYearsOfExperience(ctx, input.YearsOfExperienceID)
				return err
			},
			func(ctx context.Context) error {
				_, err := r.resolver.ResolveCountry(ctx, input.Country)
				return err
			},
		},
		insert: func(txCtx context.Context, profile *models.UserProfile) error {
			individual := &models.IndividualProfile{
				ID:                  id.IndividualProfileID(uuid.New()),
				ProfileID:           profile.ID,
				FirstName:           strings.TrimSpace(input.FirstName),
				LastName:            strings.TrimSpace(input.LastName),
				Email:               email,
				Phone:               strings.TrimSpace(input.Phone),
				Country:             strings.TrimSpace(input.Country),
				Location:            strings.TrimSpace(input.Location),
				YearsOfExperienceID: input.YearsOfExperienceID,
				FluencyLevel:        input.FluencyLevel,
				Availability:        input.Availability,
				NetworkDescription:  input.NetworkDescription,
				CreatedAt:           now,
			}
			if err := r.store.InsertIndividualProfile(txCtx, individual); err != nil {
				return err
			}
			aggregate.Individual = individual
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	aggregate.Profile = profile
	return &aggregate, nil
}
