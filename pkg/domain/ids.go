// Package domain defines typed identifiers shared across the service.
//
// IDs are distinct named types over uuid.UUID so the compiler rejects
// cross-entity assignment (a UserID can never be passed where a
// ProfileID is expected). Parse helpers enforce the trust-boundary
// invariant that IDs are valid, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "partnerhub/pkg/domain-errors"
)

// UserID identifies a platform user. Owned by the external identity
// system; this service never mints one.
type UserID uuid.UUID

// ProfileID identifies a UserProfile row.
type ProfileID uuid.UUID

// BusinessDetailsID identifies a CommonBusinessDetails row.
type BusinessDetailsID uuid.UUID

// CompanyProfileID identifies a CompanyProfile row.
type CompanyProfileID uuid.UUID

// IndividualProfileID identifies a BDPartnerIndividualProfile row.
type IndividualProfileID uuid.UUID

// OrganizationProfileID identifies a BDPartnerOrganizationProfile row.
type OrganizationProfileID uuid.UUID

func (id UserID) String() string                { return uuid.UUID(id).String() }
func (id ProfileID) String() string             { return uuid.UUID(id).String() }
func (id BusinessDetailsID) String() string     { return uuid.UUID(id).String() }
func (id CompanyProfileID) String() string      { return uuid.UUID(id).String() }
func (id IndividualProfileID) String() string   { return uuid.UUID(id).String() }
func (id OrganizationProfileID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is the nil UUID.
func (id UserID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// Named types do not inherit uuid.UUID's text marshaling, so each ID
// provides its own; without these, JSON encoding would emit raw byte
// arrays.

func (id UserID) MarshalText() ([]byte, error)            { return []byte(id.String()), nil }
func (id ProfileID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id BusinessDetailsID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id CompanyProfileID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id IndividualProfileID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
func (id OrganizationProfileID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b))
	if err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

func (id *ProfileID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b))
	if err != nil {
		return err
	}
	*id = ProfileID(u)
	return nil
}

// ParseUserID parses and validates an external user identifier.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

// ParseProfileID parses and validates a profile identifier.
func ParseProfileID(s string) (ProfileID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ProfileID{}, err
	}
	return ProfileID(u), nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}
