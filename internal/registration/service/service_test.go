package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerhub/internal/audit"
	auditmemory "partnerhub/internal/audit/store/memory"
	lookupservice "partnerhub/internal/lookup/service"
	lookupstore "partnerhub/internal/lookup/store"
	"partnerhub/internal/registration/models"
	"partnerhub/internal/registration/store"
	id "partnerhub/pkg/domain"
	dErrors "partnerhub/pkg/domain-errors"
)

type testEnv struct {
	registrar *Registrar
	store     *store.InMemory
	audit     *auditmemory.Store
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	mem := store.NewInMemory()
	resolver := lookupservice.New(lookupstore.NewInMemorySeeded())
	auditStore := auditmemory.New()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{
		WithLogger(logger),
		WithAuditPublisher(syncEmitter{auditStore}),
	}, opts...)

	return &testEnv{
		registrar: New(mem, mem, resolver, opts...),
		store:     mem,
		audit:     auditStore,
	}
}

// syncEmitter writes audit events straight to the store, keeping tests
// free of buffering concerns.
type syncEmitter struct {
	store *auditmemory.Store
}

func (e syncEmitter) Emit(ctx context.Context, event audit.Event) {
	_ = e.store.Write(ctx, event)
}

func newUser() id.UserID { return id.UserID(uuid.New()) }

func companyInput(regNumber, contactEmail string) CompanyInput {
	return CompanyInput{
		Business: BusinessInput{
			CompanyName:        "Acme Exports",
			RegistrationNumber: regNumber,
			Country:            "India",
			ContactName:        "Asha Rao",
			ContactEmail:       contactEmail,
		},
		NDAAgreed:          true,
		HeadOfficeLocation: "Mumbai",
	}
}

func individualInput(email string) IndividualInput {
	return IndividualInput{
		FirstName:           "Ravi",
		LastName:            "Iyer",
		Email:               email,
		Country:             "India",
		YearsOfExperienceID: 2,
	}
}

func organizationInput(regNumber, contactEmail string) OrganizationInput {
	return OrganizationInput{
		Business: BusinessInput{
			CompanyName:        "Meridian Partners",
			RegistrationNumber: regNumber,
			Country:            "Singapore",
			ContactName:        "Lena Teo",
			ContactEmail:       contactEmail,
		},
		BusinessStructureID: 3,
		EmployeeCount:       "ELEVEN_TO_FIFTY",
		YearsOfExperienceID: 3,
	}
}

func TestEnsureProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := newUser()

	first, err := env.registrar.EnsureProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationPending, first.Classification)
	assert.Equal(t, models.StatusDraft, first.Status)

	second, err := env.registrar.EnsureProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "signup hook must never produce a second row")

	events := env.audit.ListByUser(user)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionProfileCreated, events[0].Action)
}

func TestRegisterCompany(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := newUser()

	_, err := env.registrar.EnsureProfile(ctx, user)
	require.NoError(t, err)

	aggregate, err := env.registrar.RegisterCompany(ctx, user, companyInput("REG-100", "contact@acme.example"))
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationCompany, aggregate.Profile.Classification)
	assert.Equal(t, models.StatusActive, aggregate.Profile.Status)
	assert.Equal(t, aggregate.Profile.ID, aggregate.Company.ProfileID)
	assert.Equal(t, aggregate.Business.ID, aggregate.Company.BusinessDetailsID)
	assert.True(t, aggregate.Company.NDAAgreed)

	events := env.audit.ListByUser(user)
	require.Len(t, events, 2)
	assert.Equal(t, audit.ActionProfileClassified, events[1].Action)
	assert.Equal(t, string(models.ClassificationCompany), events[1].Classification)
}

func TestRegisterCompany_FieldFallbacks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("registered name wins over company name", func(t *testing.T) {
		input := companyInput("REG-201", "a@fallback.example")
		input.Business.RegisteredName = "Acme Exports Private Ltd"
		aggregate, err := env.registrar.RegisterCompany(ctx, newUser(), input)
		require.NoError(t, err)
		assert.Equal(t, "Acme Exports Private Ltd", aggregate.Business.LegalName)
	})

	t.Run("company name is the legal-name fallback", func(t *testing.T) {
		aggregate, err := env.registrar.RegisterCompany(ctx, newUser(), companyInput("REG-202", "b@fallback.example"))
		require.NoError(t, err)
		assert.Equal(t, "Acme Exports", aggregate.Business.LegalName)
	})

	t.Run("registration country falls back through country to Unknown", func(t *testing.T) {
		input := companyInput("REG-203", "c@fallback.example")
		input.Business.Country = ""
		aggregate, err := env.registrar.RegisterCompany(ctx, newUser(), input)
		require.NoError(t, err)
		assert.Equal(t, "Unknown", aggregate.Business.RegistrationCountry)
	})

	t.Run("website and linkedin accept either alias", func(t *testing.T) {
		input := companyInput("REG-204", "d@fallback.example")
		input.Business.Website = "https://acme.example"
		input.Business.LinkedInURL = "https://linkedin.com/company/acme"
		aggregate, err := env.registrar.RegisterCompany(ctx, newUser(), input)
		require.NoError(t, err)
		assert.Equal(t, "https://acme.example", aggregate.Business.WebsiteURL)
		assert.Equal(t, "https://linkedin.com/company/acme", aggregate.Business.LinkedInURL)
	})
}

// TestMonotonicClassification verifies that a classified user can never
// register again under any kind.
func TestMonotonicClassification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := newUser()

	_, err := env.registrar.EnsureProfile(ctx, user)
	require.NoError(t, err)
	_, err = env.registrar.RegisterCompany(ctx, user, companyInput("REG-300", "mono@acme.example"))
	require.NoError(t, err)

	_, err = env.registrar.RegisterCompany(ctx, user, companyInput("REG-301", "other@acme.example"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = env.registrar.RegisterIndividual(ctx, user, individualInput("mono@partners.example"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = env.registrar.RegisterOrganization(ctx, user, organizationInput("REG-302", "org@acme.example"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	profile, err := env.registrar.ProfileStatus(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationCompany, profile.Classification)
}

// TestRegistrationNumberUniqueness verifies the shared registration
// number invariant across users, and that a rejected registration
// writes nothing.
func TestRegistrationNumberUniqueness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.registrar.RegisterCompany(ctx, newUser(), companyInput("REG-100", "first@acme.example"))
	require.NoError(t, err)

	loser := newUser()
	_, err = env.registrar.RegisterCompany(ctx, loser, companyInput("REG-100", "second@acme.example"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	assert.Equal(t, 1, env.store.CountBusinessDetails())
	assert.Equal(t, 1, env.store.CountCompanyProfiles())
}

// TestUniquenessScopedAcrossProfileKinds verifies that a registration
// number used by a company also blocks an organization registration:
// the shared entity makes the invariant platform-wide.
func TestUniquenessScopedAcrossProfileKinds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.registrar.RegisterCompany(ctx, newUser(), companyInput("REG-500", "company@shared.example"))
	require.NoError(t, err)

	_, err = env.registrar.RegisterOrganization(ctx, newUser(), organizationInput("REG-500", "org@shared.example"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

// failingStore forces the dependent-entity insert to fail after the
// classification transition has executed inside the transaction.
type failingStore struct {
	*store.InMemory
}

var errInjected = errors.New("injected insert failure")

func (f *failingStore) InsertCompanyProfile(context.Context, *models.CompanyProfile) error {
	return errInjected
}

// TestAtomicRollback verifies that a failure inside the transaction
// leaves the classification untouched. No partial state survives.
func TestAtomicRollback(t *testing.T) {
	mem := store.NewInMemory()
	failing := &failingStore{InMemory: mem}
	resolver := lookupservice.New(lookupstore.NewInMemorySeeded())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registrar := New(failing, mem, resolver, WithLogger(logger))

	ctx := context.Background()
	user := newUser()

	_, err := registrar.EnsureProfile(ctx, user)
	require.NoError(t, err)

	_, err = registrar.RegisterCompany(ctx, user, companyInput("REG-400", "atomic@acme.example"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal), "injected failure must surface as internal")

	profile, err := registrar.ProfileStatus(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationPending, profile.Classification, "transition must roll back")
	assert.Equal(t, 0, mem.CountBusinessDetails(), "business details must roll back")
}

// blindStore disables the advisory uniqueness pre-checks, exposing the
// storage-level constraint as the authoritative guard.
type blindStore struct {
	*store.InMemory
}

func (b *blindStore) BusinessRegistrationNumberExists(context.Context, string) (bool, error) {
	return false, nil
}

func (b *blindStore) BusinessContactEmailExists(context.Context, string) (bool, error) {
	return false, nil
}

// TestConstraintIsAuthoritative verifies that when the advisory check
// misses (simulating the check-then-insert race), the unique constraint
// still rejects the duplicate and the whole transaction rolls back.
func TestConstraintIsAuthoritative(t *testing.T) {
	mem := store.NewInMemory()
	blind := &blindStore{InMemory: mem}
	resolver := lookupservice.New(lookupstore.NewInMemorySeeded())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registrar := New(blind, mem, resolver, WithLogger(logger))

	ctx := context.Background()

	_, err := registrar.RegisterCompany(ctx, newUser(), companyInput("REG-600", "guard@acme.example"))
	require.NoError(t, err)

	loser := newUser()
	_, err = registrar.RegisterCompany(ctx, loser, companyInput("REG-600", "other@acme.example"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict), "constraint violation must translate to conflict")

	profile, err := registrar.ProfileStatus(ctx, loser)
	require.NoError(t, err)
	assert.Equal(t, models.ClassificationPending, profile.Classification)
	assert.Equal(t, 1, mem.CountBusinessDetails())
}

func TestRegisterIndividual(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("creates the individual aggregate", func(t *testing.T) {
		user := newUser()
		_, err := env.registrar.EnsureProfile(ctx, user)
		require.NoError(t, err)

		aggregate, err := env.registrar.RegisterIndividual(ctx, user, individualInput("ravi@partners.example"))
		require.NoError(t, err)
		assert.Equal(t, models.ClassificationBDIndividual, aggregate.Profile.Classification)
		assert.Equal(t, "ravi@partners.example", aggregate.Individual.Email)
	})

	t.Run("missing years of experience is a validation error with no writes", func(t *testing.T) {
		user := newUser()
		_, err := env.registrar.EnsureProfile(ctx, user)
		require.NoError(t, err)

		input := individualInput("missing-ref@partners.example")
		input.YearsOfExperienceID = 999

		_, err = env.registrar.RegisterIndividual(ctx, user, input)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		profile, err := env.registrar.ProfileStatus(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, models.ClassificationPending, profile.Classification)
	})

	t.Run("duplicate partner email is a conflict", func(t *testing.T) {
		_, err := env.registrar.RegisterIndividual(ctx, newUser(), individualInput("dup@partners.example"))
		require.NoError(t, err)

		_, err = env.registrar.RegisterIndividual(ctx, newUser(), individualInput("DUP@partners.example"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func TestRegisterOrganization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("creates the organization aggregate with normalized employee count", func(t *testing.T) {
		aggregate, err := env.registrar.RegisterOrganization(ctx, newUser(), organizationInput("REG-700", "org@meridian.example"))
		require.NoError(t, err)
		assert.Equal(t, models.ClassificationBDOrganization, aggregate.Profile.Classification)
		assert.Equal(t, models.EmployeeCount11To50, aggregate.Organization.EmployeeCount)
		assert.Equal(t, aggregate.Business.ID, aggregate.Organization.BusinessDetailsID)
	})

	t.Run("missing business structure is a validation error", func(t *testing.T) {
		input := organizationInput("REG-701", "org2@meridian.example")
		input.BusinessStructureID = 404
		_, err := env.registrar.RegisterOrganization(ctx, newUser(), input)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// TestConcurrentSameUserRegistration runs two registrations for one
// user: exactly one must win, and the stored company must match the
// winning payload.
func TestConcurrentSameUserRegistration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := newUser()

	_, err := env.registrar.EnsureProfile(ctx, user)
	require.NoError(t, err)

	inputs := []CompanyInput{
		companyInput("REG-800", "alpha@race.example"),
		companyInput("REG-801", "beta@race.example"),
	}

	results := make([]*models.CompanyAggregate, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = env.registrar.RegisterCompany(ctx, user, inputs[i])
		}()
	}
	wg.Wait()

	var winners, conflicts int
	var winner *models.CompanyAggregate
	for i := range inputs {
		if errs[i] == nil {
			winners++
			winner = results[i]
		} else if dErrors.HasCode(errs[i], dErrors.CodeConflict) {
			conflicts++
		}
	}
	assert.Equal(t, 1, winners, "exactly one registration must succeed")
	assert.Equal(t, 1, conflicts, "the loser must observe a conflict")

	stored, ok := env.store.FindCompanyByProfileID(winner.Profile.ID)
	require.True(t, ok)
	assert.Equal(t, winner.Company.ID, stored.ID, "stored company must match the winning payload")
	assert.Equal(t, 1, env.store.CountCompanyProfiles())
}

func TestUnauthenticatedRegistration(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.registrar.RegisterCompany(context.Background(), id.UserID{}, companyInput("REG-900", "z@acme.example"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
