// Package service orchestrates profile registration: the one-time,
// atomic creation of a user's type-specific profile and its dependent
// records.
//
// All three registration kinds share one algorithm: check the profile
// is still provisional, run advisory uniqueness checks, validate
// lookup references concurrently, then apply the classification
// transition and insert the entity graph inside a single transaction.
// The storage layer's conditional update and unique constraints are
// the authoritative guards; everything before the transaction is
// fail-fast only.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"partnerhub/internal/audit"
	lookupmodels "partnerhub/internal/lookup/models"
	"partnerhub/internal/registration/metrics"
	"partnerhub/internal/registration/models"
	"partnerhub/internal/registration/store"
	id "partnerhub/pkg/domain"
	dErrors "partnerhub/pkg/domain-errors"
	"partnerhub/pkg/platform/sentinel"
	"partnerhub/pkg/requestcontext"
)

// Store persists registration entities. Reads outside a transaction
// are advisory; writes happen inside RunInTx via the same store.
type Store interface {
	CreateIfAbsent(ctx context.Context, p *models.UserProfile) (*models.UserProfile, error)
	FindByUserID(ctx context.Context, userID id.UserID) (*models.UserProfile, error)
	Classify(ctx context.Context, profileID id.ProfileID, userID id.UserID, target models.Classification, now time.Time) (*models.UserProfile, error)

	InsertBusinessDetails(ctx context.Context, b *models.CommonBusinessDetails) error
	InsertCompanyProfile(ctx context.Context, c *models.CompanyProfile) error
	InsertIndividualProfile(ctx context.Context, p *models.IndividualProfile) error
	InsertOrganizationProfile(ctx context.Context, p *models.OrganizationProfile) error

	BusinessRegistrationNumberExists(ctx context.Context, value string) (bool, error)
	BusinessContactEmailExists(ctx context.Context, value string) (bool, error)
	IndividualEmailExists(ctx context.Context, value string) (bool, error)
}

// StoreTx runs a write phase in a single transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// ReferenceResolver validates foreign lookup references.
type ReferenceResolver interface {
	ResolveCountry(ctx context.Context, name string) (*lookupmodels.Country, error)
	ResolveYearsOfExperience(ctx context.Context, yoeID int64) (*lookupmodels.YearsOfExperience, error)
	ResolveBusinessStructure(ctx context.Context, structureID int64) (*lookupmodels.BusinessStructure, error)
}

// AuditPublisher records registration actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Registrar is the registration service.
type Registrar struct {
	store    Store
	tx       StoreTx
	resolver ReferenceResolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    AuditPublisher
	tracer   trace.Tracer
	newID    func() id.ProfileID
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registrar) { r.logger = logger }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registrar) { r.metrics = m }
}

// WithAuditPublisher enables audit event emission.
func WithAuditPublisher(p AuditPublisher) Option {
	return func(r *Registrar) { r.audit = p }
}

// New constructs a Registrar.
func New(s Store, tx StoreTx, resolver ReferenceResolver, opts ...Option) *Registrar {
	r := &Registrar{
		store:    s,
		tx:       tx,
		resolver: resolver,
		logger:   slog.Default(),
		tracer:   otel.Tracer("partnerhub/registration"),
		newID:    newProfileID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Conflicts reported by the advisory checks. The in-transaction guard
// reports the same messages via translateStoreErr.
var (
	conflictRegistrationNumber = dErrors.New(dErrors.CodeConflict, "registration number already in use")
	conflictContactEmail       = dErrors.New(dErrors.CodeConflict, "business contact email already in use")
	conflictIndividualEmail    = dErrors.New(dErrors.CodeConflict, "email already registered by another partner")
)

// uniqueCheck is one advisory existence probe with the conflict it
// reports on a hit.
type uniqueCheck struct {
	exists   func(ctx context.Context) (bool, error)
	conflict *dErrors.Error
}

// plan describes one registration kind declaratively: which uniqueness
// probes to run, which lookup references to validate, and how to build
// the entity graph inside the transaction.
type plan struct {
	target       models.Classification
	uniqueChecks []uniqueCheck
	// refChecks run concurrently; each validates one lookup reference.
	refChecks []func(ctx context.Context) error
	// insert writes the dependent entities. It runs inside the
	// transaction, after the classification transition.
	insert func(txCtx context.Context, profile *models.UserProfile) error
}

// register is the shared orchestrator for all three registration kinds.
func (r *Registrar) register(ctx context.Context, userID id.UserID, p plan) (*models.UserProfile, error) {
	ctx, span := r.tracer.Start(ctx, "registration.register",
		trace.WithAttributes(attribute.String("registration.kind", string(p.target))))
	defer span.End()

	start := time.Now()
	profile, err := r.doRegister(ctx, userID, p)
	outcome := "success"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
		span.RecordError(err)
	}
	r.metrics.ObserveRegistration(string(p.target), outcome, time.Since(start))
	return profile, err
}

func (r *Registrar) doRegister(ctx context.Context, userID id.UserID, p plan) (*models.UserProfile, error) {
	if userID.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	if err := r.requirePending(ctx, userID); err != nil {
		return nil, err
	}

	for _, check := range p.uniqueChecks {
		hit, err := check.exists(ctx)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "uniqueness check failed")
		}
		if hit {
			return nil, check.conflict
		}
	}

	if len(p.refChecks) > 0 {
		g, gCtx := errgroup.WithContext(ctx)
		for _, check := range p.refChecks {
			g.Go(func() error { return check(gCtx) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	now := requestcontext.Now(ctx)
	profileID := r.newID()

	var profile *models.UserProfile
	err := r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		classified, err := r.store.Classify(txCtx, profileID, userID, p.target, now)
		if err != nil {
			return r.translateStoreErr(txCtx, err)
		}
		if err := p.insert(txCtx, classified); err != nil {
			return r.translateStoreErr(txCtx, err)
		}
		profile = classified
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "profile classified",
		"user_id", userID,
		"classification", p.target,
		"request_id", requestcontext.RequestID(ctx),
	)
	if r.audit != nil {
		r.audit.Emit(ctx, audit.Event{
			Timestamp:      now,
			UserID:         userID,
			Action:         audit.ActionProfileClassified,
			Classification: string(p.target),
			RequestID:      requestcontext.RequestID(ctx),
		})
	}
	return profile, nil
}

// requirePending is the hasExistingProfile read: a fail-fast check
// that the user has not already registered. Races with concurrent
// registrations are closed by the conditional transition inside the
// transaction, not here.
func (r *Registrar) requirePending(ctx context.Context, userID id.UserID) error {
	existing, err := r.store.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Profiles are pre-created at signup, but registration
			// tolerates the row being absent.
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "profile lookup failed")
	}
	if existing.Classification.IsTerminal() {
		return dErrors.New(dErrors.CodeConflict, "profile already exists")
	}
	return nil
}

// translateStoreErr converts store failures into the caller's error
// taxonomy. Anything unexpected is logged and collapsed to an internal
// error so storage detail never reaches the caller.
func (r *Registrar) translateStoreErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicateRegistrationNumber):
		return dErrors.New(dErrors.CodeConflict, "registration number already in use")
	case errors.Is(err, store.ErrDuplicateContactEmail):
		return dErrors.New(dErrors.CodeConflict, "business contact email already in use")
	case errors.Is(err, store.ErrDuplicateIndividualEmail):
		return dErrors.New(dErrors.CodeConflict, "email already registered by another partner")
	case errors.Is(err, sentinel.ErrAlreadyClassified):
		return dErrors.New(dErrors.CodeConflict, "profile already exists")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "conflicting registration detected")
	}

	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}

	r.logger.ErrorContext(ctx, "registration transaction failed",
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, "registration failed")
}
