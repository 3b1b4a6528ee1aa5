package models

import (
	"time"

	id "partnerhub/pkg/domain"
)

// CommonBusinessDetails is the shared legal/contact entity referenced
// by both company and BD-organization profiles. RegistrationNumber and
// ContactEmail are unique across all rows regardless of which profile
// kind references them; the table's unique constraints are the
// authoritative guard.
type CommonBusinessDetails struct {
	ID                  id.BusinessDetailsID `json:"id"`
	LegalName           string               `json:"legal_name"`
	RegistrationNumber  string               `json:"registration_number"`
	RegistrationCountry string               `json:"registration_country"`
	RegisteredAddress   string               `json:"registered_address"`
	ContactName         string               `json:"contact_name"`
	ContactDesignation  string               `json:"contact_designation"`
	ContactEmail        string               `json:"contact_email"`
	ContactPhone        string               `json:"contact_phone"`
	WebsiteURL          string               `json:"website_url,omitempty"`
	LinkedInURL         string               `json:"linkedin_url,omitempty"`
	EstablishmentYear   int                  `json:"establishment_year,omitempty"`
	Description         string               `json:"description,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

// CompanyProfile is 1:1 with a UserProfile and one CommonBusinessDetails row.
type CompanyProfile struct {
	ID                 id.CompanyProfileID  `json:"id"`
	ProfileID          id.ProfileID         `json:"profile_id"`
	BusinessDetailsID  id.BusinessDetailsID `json:"business_details_id"`
	NDAAgreed          bool                 `json:"nda_agreed"`
	HeadOfficeLocation string               `json:"head_office_location"`
	CreatedAt          time.Time            `json:"created_at"`
}

// IndividualProfile is 1:1 with a UserProfile. Email is independently
// unique across all individual partner profiles.
type IndividualProfile struct {
	ID                  id.IndividualProfileID `json:"id"`
	ProfileID           id.ProfileID           `json:"profile_id"`
	FirstName           string                 `json:"first_name"`
	LastName            string                 `json:"last_name"`
	Email               string                 `json:"email"`
	Phone               string                 `json:"phone"`
	Country             string                 `json:"country"`
	Location            string                 `json:"location,omitempty"`
	YearsOfExperienceID int64                  `json:"years_of_experience_id"`
	FluencyLevel        string                 `json:"fluency_level,omitempty"`
	Availability        string                 `json:"availability,omitempty"`
	NetworkDescription  string                 `json:"network_description,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
}

// OrganizationProfile is 1:1 with a UserProfile and one
// CommonBusinessDetails row.
type OrganizationProfile struct {
	ID                    id.OrganizationProfileID `json:"id"`
	ProfileID             id.ProfileID             `json:"profile_id"`
	BusinessDetailsID     id.BusinessDetailsID     `json:"business_details_id"`
	BusinessStructureID   int64                    `json:"business_structure_id"`
	EmployeeCount         EmployeeCountBracket     `json:"employee_count"`
	YearsOfExperienceID   int64                    `json:"years_of_experience_id"`
	Availability          string                   `json:"availability,omitempty"`
	ClientBaseDescription string                   `json:"client_base_description,omitempty"`
	CreatedAt             time.Time                `json:"created_at"`
}

// CompanyAggregate is the composed result of a company registration.
type CompanyAggregate struct {
	Profile  *UserProfile           `json:"profile"`
	Company  *CompanyProfile        `json:"company"`
	Business *CommonBusinessDetails `json:"business_details"`
}

// IndividualAggregate is the composed result of an individual BD
// partner registration.
type IndividualAggregate struct {
	Profile    *UserProfile       `json:"profile"`
	Individual *IndividualProfile `json:"individual"`
}

// OrganizationAggregate is the composed result of an organizational BD
// partner registration.
type OrganizationAggregate struct {
	Profile      *UserProfile           `json:"profile"`
	Organization *OrganizationProfile   `json:"organization"`
	Business     *CommonBusinessDetails `json:"business_details"`
}
