package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"partnerhub/internal/registration/models"
	id "partnerhub/pkg/domain"
	"partnerhub/pkg/platform/sentinel"
	"partnerhub/pkg/platform/tx"
)

// PostgresStore persists registration entities in PostgreSQL. Methods
// run against the transaction stored in context when one is present,
// so the same store serves both pre-transaction reads and the write
// phase inside RunInTx.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registration store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) conn(ctx context.Context) querier {
	if sqlTx, ok := tx.From(ctx); ok {
		return sqlTx
	}
	return s.db
}

const profileColumns = `id, user_id, classification, status, created_at, updated_at`

// CreateIfAbsent inserts the provisional profile unless one already
// exists for the user, and returns the stored row either way. This is
// the signup hook: calling it twice never produces two rows.
func (s *PostgresStore) CreateIfAbsent(ctx context.Context, p *models.UserProfile) (*models.UserProfile, error) {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO user_profiles (id, user_id, classification, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT uq_user_profiles_user_id DO NOTHING
	`, uuid.UUID(p.ID), uuid.UUID(p.UserID), string(p.Classification), string(p.Status), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user profile: %w", err)
	}
	return s.FindByUserID(ctx, p.UserID)
}

// FindByUserID returns the profile for an external user identity.
func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*models.UserProfile, error) {
	row := s.conn(ctx).QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, uuid.UUID(userID))
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user profile: %w", err)
	}
	return p, nil
}

// Classify applies the one-way classification transition as an upsert
// conditioned on the current classification being PENDING. The profile
// row is normally pre-created at signup; when it is not, the insert arm
// creates it already classified. Zero rows returned means a concurrent
// registration already claimed the profile.
func (s *PostgresStore) Classify(
	ctx context.Context,
	profileID id.ProfileID,
	userID id.UserID,
	target models.Classification,
	now time.Time,
) (*models.UserProfile, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO user_profiles (id, user_id, classification, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT ON CONSTRAINT uq_user_profiles_user_id DO UPDATE SET
			classification = EXCLUDED.classification,
			status         = EXCLUDED.status,
			updated_at     = EXCLUDED.updated_at
		WHERE user_profiles.classification = 'PENDING'
		RETURNING `+profileColumns,
		uuid.UUID(profileID), uuid.UUID(userID), string(target), string(models.StatusActive), now)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrAlreadyClassified
		}
		return nil, fmt.Errorf("classify user profile: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) InsertBusinessDetails(ctx context.Context, b *models.CommonBusinessDetails) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO business_details (
			id, legal_name, registration_number, registration_country, registered_address,
			contact_name, contact_designation, contact_email, contact_phone,
			website_url, linkedin_url, establishment_year, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, uuid.UUID(b.ID), b.LegalName, b.RegistrationNumber, b.RegistrationCountry, b.RegisteredAddress,
		b.ContactName, b.ContactDesignation, b.ContactEmail, b.ContactPhone,
		b.WebsiteURL, b.LinkedInURL, nullInt(b.EstablishmentYear), b.Description, b.CreatedAt)
	if err != nil {
		return translateUniqueViolation(err, "insert business details")
	}
	return nil
}

func (s *PostgresStore) InsertCompanyProfile(ctx context.Context, c *models.CompanyProfile) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO company_profiles (id, profile_id, business_details_id, nda_agreed, head_office_location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(c.ID), uuid.UUID(c.ProfileID), uuid.UUID(c.BusinessDetailsID), c.NDAAgreed, c.HeadOfficeLocation, c.CreatedAt)
	if err != nil {
		return translateUniqueViolation(err, "insert company profile")
	}
	return nil
}

func (s *PostgresStore) InsertIndividualProfile(ctx context.Context, p *models.IndividualProfile) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO bd_individual_profiles (
			id, profile_id, first_name, last_name, email, phone, country, location,
			years_of_experience_id, fluency_level, availability, network_description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, uuid.UUID(p.ID), uuid.UUID(p.ProfileID), p.FirstName, p.LastName, p.Email, p.Phone, p.Country, p.Location,
		p.YearsOfExperienceID, p.FluencyLevel, p.Availability, p.NetworkDescription, p.CreatedAt)
	if err != nil {
		return translateUniqueViolation(err, "insert individual profile")
	}
	return nil
}

func (s *PostgresStore) InsertOrganizationProfile(ctx context.Context, p *models.OrganizationProfile) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO bd_organization_profiles (
			id, profile_id, business_details_id, business_structure_id, employee_count,
			years_of_experience_id, availability, client_base_description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.UUID(p.ID), uuid.UUID(p.ProfileID), uuid.UUID(p.BusinessDetailsID), p.BusinessStructureID,
		string(p.EmployeeCount), p.YearsOfExperienceID, p.Availability, p.ClientBaseDescription, p.CreatedAt)
	if err != nil {
		return translateUniqueViolation(err, "insert organization profile")
	}
	return nil
}

// Advisory existence checks used by the pre-transaction uniqueness
// validation. The unique constraints remain the source of truth.

func (s *PostgresStore) BusinessRegistrationNumberExists(ctx context.Context, value string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM business_details WHERE registration_number = $1)`, value)
}

func (s *PostgresStore) BusinessContactEmailExists(ctx context.Context, value string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM business_details WHERE lower(contact_email) = lower($1))`, value)
}

func (s *PostgresStore) IndividualEmailExists(ctx context.Context, value string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM bd_individual_profiles WHERE lower(email) = lower($1))`, value)
}

func (s *PostgresStore) exists(ctx context.Context, query, value string) (bool, error) {
	var exists bool
	if err := s.conn(ctx).QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.UserProfile, error) {
	var (
		p              models.UserProfile
		profileID      uuid.UUID
		userID         uuid.UUID
		classification string
		status         string
	)
	if err := row.Scan(&profileID, &userID, &classification, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ID = id.ProfileID(profileID)
	p.UserID = id.UserID(userID)
	p.Classification = models.Classification(classification)
	p.Status = models.ProfileStatus(status)
	return &p, nil
}

// translateUniqueViolation maps Postgres unique violations (SQLSTATE
// 23505) to the store's conflict errors by constraint name, so the
// in-transaction guard produces the same errors as the advisory checks.
func translateUniqueViolation(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "uq_business_details_registration_number":
			return ErrDuplicateRegistrationNumber
		case "uq_business_details_contact_email":
			return ErrDuplicateContactEmail
		case "uq_bd_individual_profiles_email":
			return ErrDuplicateIndividualEmail
		default:
			return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullInt(v int) sql.NullInt32 {
	if v == 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(v), Valid: true}
}
