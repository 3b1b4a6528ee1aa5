package service

import (
	"context"

	"github.com/google/uuid"

	"partnerhub/internal/registration/models"
	id "partnerhub/pkg/domain"
	"partnerhub/pkg/requestcontext"
)

// RegisterCompany atomically creates a company profile: classification
// transition, shared business details, and the company row commit or
// roll back together.
func (r *Registrar) RegisterCompany(ctx context.Context, userID id.UserID, input CompanyInput) (*models.CompanyAggregate, error) {
	now := requestcontext.Now(ctx)
	business := input.Business.normalize(now)

	var aggregate models.CompanyAggregate
	profile, err := r.register(ctx, userID, plan{
		target:       models.ClassificationCompany,
		uniqueChecks: r.businessUniqueChecks(business),
		insert: func(txCtx context.Context, profile *models.UserProfile) error {
			if err := r.store.InsertBusinessDetails(txCtx, business); err != nil {
				return err
			}
			company := &models.CompanyProfile{
				ID:                 id.CompanyProfileID(uuid.New()),
				ProfileID:          profile.ID,
				BusinessDetailsID:  business.ID,
				NDAAgreed:          input.NDAAgreed,
				HeadOfficeLocation: input.HeadOfficeLocation,
				CreatedAt:          now,
			}
			if err := r.store.InsertCompanyProfile(txCtx, company); err != nil {
				return err
			}
			aggregate.Company = company
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

// businessUniqueChecks returns the advisory probes shared by company
// and organization registration.
func (r *Registrar) businessUniqueChecks(business *models.CommonBusinessDetails) []uniqueCheck {
	return []uniqueCheck{
		{
			exists: func(ctx context.Context) (bool, error) {
				return r.store.BusinessRegistrationNumberExists(ctx, business.RegistrationNumber)
			},
			conflict: conflictRegistrationNumber,
		},
		{
			exists: func(ctx context.Context) (bool, error) {
				return r.store.BusinessContactEmailExists(ctx, business.ContactEmail)
			},
			conflict: conflictContactEmail,
		},
	}
}
