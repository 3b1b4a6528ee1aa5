package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"partnerhub/internal/registration/models"
	id "partnerhub/pkg/domain"
)

// BusinessInput carries the shared business details of a company or
// organization registration. Older clients send some fields under
// alternate names; normalization resolves them in one place.
//
// Field precedence:
//
//	legal name            RegisteredName, else CompanyName
//	registration country  RegistrationCountry, else Country, else "Unknown"
//	website URL           WebsiteURL, else Website
//	linkedin URL          LinkedInURL, else LinkedIn
type BusinessInput struct {
	CompanyName         string
	RegisteredName      string
	RegistrationNumber  string
	RegistrationCountry string
	Country             string
	RegisteredAddress   string
	ContactName         string
	ContactDesignation  string
	ContactEmail        string
	ContactPhone        string
	Website             string
	WebsiteURL          string
	LinkedIn            string
	LinkedInURL         string
	EstablishmentYear   int
	Description         string
}

// normalize materializes the canonical business details row from the
// inbound aliases.
func (in BusinessInput) normalize(now time.Time) *models.CommonBusinessDetails {
	return &models.CommonBusinessDetails{
		ID:                  id.BusinessDetailsID(uuid.New()),
		LegalName:           firstNonEmpty(in.RegisteredName, in.CompanyName),
		RegistrationNumber:  strings.TrimSpace(in.RegistrationNumber),
		RegistrationCountry: firstNonEmpty(in.RegistrationCountry, in.Country, "Unknown"),
		RegisteredAddress:   strings.TrimSpace(in.RegisteredAddress),
		ContactName:         strings.TrimSpace(in.ContactName),
		ContactDesignation:  strings.TrimSpace(in.ContactDesignation),
		ContactEmail:        strings.ToLower(strings.TrimSpace(in.ContactEmail)),
		ContactPhone:        strings.TrimSpace(in.ContactPhone),
		WebsiteURL:          firstNonEmpty(in.WebsiteURL, in.Website),
		LinkedInURL:         firstNonEmpty(in.LinkedInURL, in.LinkedIn),
		EstablishmentYear:   in.EstablishmentYear,
		Description:         strings.TrimSpace(in.Description),
		CreatedAt:           now,
	}
}

// CompanyInput is the payload of a company registration.
type CompanyInput struct {
	Business           BusinessInput
	NDAAgreed          bool
	HeadOfficeLocation string
}

// IndividualInput is the payload of an individual BD partner
// registration.
type IndividualInput struct {
	FirstName           string
	LastName            string
	Email               string
	Phone               string
	Country             string
	Location            string
	YearsOfExperienceID int64
	FluencyLevel        string
	Availability        string
	NetworkDescription  string
}

// OrganizationInput is the payload of an organizational BD partner
// registration. EmployeeCount accepts either the display range or the
// symbolic token; it is normalized before persistence.
type OrganizationInput struct {
	Business              BusinessInput
	BusinessStructureID   int64
	EmployeeCount         string
	YearsOfExperienceID   int64
	Availability          string
	ClientBaseDescription string
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
