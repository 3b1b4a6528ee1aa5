package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"partnerhub/internal/registration/models"
	id "partnerhub/pkg/domain"
	"partnerhub/pkg/platform/sentinel"
)

// InMemory is a registration store for tests and local development.
// It enforces the same invariants as the Postgres store: conditional
// classification transition, unique business identifiers, and
// transactional rollback via RunInTx.
type InMemory struct {
	// txMu serializes transactions so a snapshot/restore rollback
	// cannot clobber a concurrent transaction's writes.
	txMu sync.Mutex

	mu            sync.Mutex
	profiles      map[id.UserID]*models.UserProfile
	business      map[id.BusinessDetailsID]*models.CommonBusinessDetails
	companies     map[id.ProfileID]*models.CompanyProfile
	individuals   map[id.ProfileID]*models.IndividualProfile
	organizations map[id.ProfileID]*models.OrganizationProfile
}

// NewInMemory constructs an empty in-memory registration store.
func NewInMemory() *InMemory {
	return &InMemory{
		profiles:      make(map[id.UserID]*models.UserProfile),
		business:      make(map[id.BusinessDetailsID]*models.CommonBusinessDetails),
		companies:     make(map[id.ProfileID]*models.CompanyProfile),
		individuals:   make(map[id.ProfileID]*models.IndividualProfile),
		organizations: make(map[id.ProfileID]*models.OrganizationProfile),
	}
}

// RunInTx executes fn with rollback-on-error semantics. Transactions
// are fully serialized, mirroring the strongest isolation the Postgres
// runner can provide.
func (s *InMemory) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	profiles      map[id.UserID]*models.UserProfile
	business      map[id.BusinessDetailsID]*models.CommonBusinessDetails
	companies     map[id.ProfileID]*models.CompanyProfile
	individuals   map[id.ProfileID]*models.IndividualProfile
	organizations map[id.ProfileID]*models.OrganizationProfile
}

// snapshot shallow-copies the maps. Mutations always replace stored
// pointers rather than writing through them, so this is sufficient.
func (s *InMemory) snapshot() memorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memorySnapshot{
		profiles:      copyMap(s.profiles),
		business:      copyMap(s.business),
		companies:     copyMap(s.companies),
		individuals:   copyMap(s.individuals),
		organizations: copyMap(s.organizations),
	}
}

func (s *InMemory) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = snap.profiles
	s.business = snap.business
	s.companies = snap.companies
	s.individuals = snap.individuals
	s.organizations = snap.organizations
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *InMemory) CreateIfAbsent(_ context.Context, p *models.UserProfile) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.profiles[p.UserID]; ok {
		out := *existing
		return &out, nil
	}
	stored := *p
	s.profiles[p.UserID] = &stored
	out := stored
	return &out, nil
}

func (s *InMemory) FindByUserID(_ context.Context, userID id.UserID) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.profiles[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *existing
	return &out, nil
}

func (s *InMemory) Classify(
	_ context.Context,
	profileID id.ProfileID,
	userID id.UserID,
	target models.Classification,
	now time.Time,
) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[userID]
	if !ok {
		created := models.UserProfile{
			ID:             profileID,
			UserID:         userID,
			Classification: target,
			Status:         models.StatusActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		s.profiles[userID] = &created
		out := created
		return &out, nil
	}

	if existing.Classification != models.ClassificationPending {
		return nil, sentinel.ErrAlreadyClassified
	}

	updated := *existing
	updated.ApplyClassification(target, now)
	s.profiles[userID] = &updated
	out := updated
	return &out, nil
}

func (s *InMemory) InsertBusinessDetails(_ context.Context, b *models.CommonBusinessDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.business {
		if existing.RegistrationNumber == b.RegistrationNumber {
			return ErrDuplicateRegistrationNumber
		}
		if strings.EqualFold(existing.ContactEmail, b.ContactEmail) {
			return ErrDuplicateContactEmail
		}
	}
	stored := *b
	s.business[b.ID] = &stored
	return nil
}

func (s *InMemory) InsertCompanyProfile(_ context.Context, c *models.CompanyProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[c.ProfileID]; ok {
		return sentinel.ErrConflict
	}
	stored := *c
	s.companies[c.ProfileID] = &stored
	return nil
}

func (s *InMemory) InsertIndividualProfile(_ context.Context, p *models.IndividualProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.individuals[p.ProfileID]; ok {
		return sentinel.ErrConflict
	}
	for _, existing := range s.individuals {
		if strings.EqualFold(existing.Email, p.Email) {
			return ErrDuplicateIndividualEmail
		}
	}
	stored := *p
	s.individuals[p.ProfileID] = &stored
	return nil
}

func (s *InMemory) InsertOrganizationProfile(_ context.Context, p *models.OrganizationProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.organizations[p.ProfileID]; ok {
		return sentinel.ErrConflict
	}
	stored := *p
	s.organizations[p.ProfileID] = &stored
	return nil
}

func (s *InMemory) BusinessRegistrationNumberExists(_ context.Context, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.business {
		if b.RegistrationNumber == value {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemory) BusinessContactEmailExists(_ context.Context, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.business {
		if strings.EqualFold(b.ContactEmail, value) {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemory) IndividualEmailExists(_ context.Context, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.individuals {
		if strings.EqualFold(p.Email, value) {
			return true, nil
		}
	}
	return false, nil
}

// CountBusinessDetails reports how many business rows exist. Test hook.
func (s *InMemory) CountBusinessDetails() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.business)
}

// CountCompanyProfiles reports how many company rows exist. Test hook.
func (s *InMemory) CountCompanyProfiles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.companies)
}

// FindCompanyByProfileID returns the company row for a profile. Test hook.
func (s *InMemory) FindCompanyByProfileID(profileID id.ProfileID) (*models.CompanyProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[profileID]
	if !ok {
		return nil, false
	}
	out := *c
	return &out, true
}
