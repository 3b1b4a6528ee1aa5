package service

import (
	"context"

	"github.com/google/uuid"

	"partnerhub/internal/registration/models"
	id "partnerhub/pkg/domain"
	"partnerhub/pkg/requestcontext"
)

// RegisterOrganization atomically creates an organizational BD partner
// profile. Business-structure and years-of-experience references are
// validated concurrently before the transaction; the employee count is
// normalized to its canonical bracket.
func (r *Registrar) RegisterOrganization(ctx context.Context, userID id.UserID, input OrganizationInput) (*models.OrganizationAggregate, error) {
	now := requestcontext.Now(ctx)
	business := input.Business.normalize(now)
	employeeCount := models.NormalizeEmployeeCount(input.EmployeeCount)

	var aggregate models.OrganizationAggregate
	profile, err := r.register(ctx, userID, plan{
		target:       models.ClassificationBDOrganization,
		uniqueChecks: r.businessUniqueChecks(business),
		refChecks: []func(ctx context.Context) error{
			func(ctx context.Context) error {
				_, err := r.resolver.ResolveBusinessStructure(ctx, input.BusinessStructureID)
				return err
			},
			func(ctx context.Context) error {
				_, err := r.resolver.ResolveYearsOfExperience(ctx, input.YearsOfExperienceID)
				return err
			},
		},
		insert: func(txCtx context.Context, profile *models.UserProfile) error {
			if err := r.store.InsertBusinessDetails(txCtx, business); err != nil {
				return err
			}
			organization := &models.OrganizationProfile{
				ID:                    id.OrganizationProfileID(uuid.New()),
				ProfileID:             profile.ID,
				BusinessDetailsID:     business.ID,
				BusinessStructureID:   input.BusinessStructureID,
				EmployeeCount:         employeeCount,
				YearsOfExperienceID:   input.YearsOfExperienceID,
				Availability:          input.Availability,
				ClientBaseDescription: input.ClientBaseDescription,
				CreatedAt:             now,
			}
			if err := r.store.InsertOrganizationProfile(txCtx, organization); err != nil {
				return err
			}
			aggregate.Organization = organization
			aggregate.Business = business
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	aggregate.Profile = profile
	return &aggregate, nil
}
