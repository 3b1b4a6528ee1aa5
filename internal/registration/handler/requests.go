package handler

import (
	"strings"

	"partnerhub/internal/registration/service"
	dErrors "partnerhub/pkg/domain-errors"
)

// commonDetailsRequest is the wire form of the shared business details.
// Several fields accept two names for backward compatibility; the
// service resolves the precedence.
type commonDetailsRequest struct {
	CompanyName         string `json:"companyName,omitempty"`
	RegisteredName      string `json:"registeredName,omitempty"`
	RegistrationNumber  string `json:"registrationNumber"`
	RegistrationCountry string `json:"registrationCountry,omitempty"`
	Country             string `json:"country,omitempty"`
	RegisteredAddress   string `json:"registeredAddress,omitempty"`
	ContactName         string `json:"contactName"`
	ContactDesignation  string `json:"contactDesignation,omitempty"`
	ContactEmail        string `json:"contactEmail"`
	ContactPhone        string `json:"contactPhone,omitempty"`
	Website             string `json:"website,omitempty"`
	WebsiteURL          string `json:"websiteUrl,omitempty"`
	LinkedIn            string `json:"linkedin,omitempty"`
	LinkedInURL         string `json:"linkedinUrl,omitempty"`
	EstablishmentYear   int    `json:"establishmentYear,omitempty"`
	Description         string `json:"description,omitempty"`
}

func (r commonDetailsRequest) validate() error {
	if strings.TrimSpace(r.RegisteredName) == "" && strings.TrimSpace(r.CompanyName) == "" {
		return dErrors.New(dErrors.CodeValidation, "companyName or registeredName is required")
	}
	if strings.TrimSpace(r.RegistrationNumber) == "" {
		return dErrors.New(dErrors.CodeValidation, "registrationNumber is required")
	}
	if strings.TrimSpace(r.ContactName) == "" {
		return dErrors.New(dErrors.CodeValidation, "contactName is required")
	}
	if strings.TrimSpace(r.ContactEmail) == "" {
		return dErrors.New(dErrors.CodeValidation, "contactEmail is required")
	}
	return nil
}

func (r commonDetailsRequest) toInput() service.BusinessInput {
	return service.BusinessInput{
		CompanyName:         r.CompanyName,
		RegisteredName:      r.RegisteredName,
		RegistrationNumber:  r.RegistrationNumber,
		RegistrationCountry: r.RegistrationCountry,
		Country:             r.Country,
		RegisteredAddress:   r.RegisteredAddress,
		ContactName:         r.ContactName,
		ContactDesignation:  r.ContactDesignation,
		ContactEmail:        r.ContactEmail,
		ContactPhone:        r.ContactPhone,
		Website:             r.Website,
		WebsiteURL:          r.WebsiteURL,
		LinkedIn:            r.LinkedIn,
		LinkedInURL:         r.LinkedInURL,
		EstablishmentYear:   r.EstablishmentYear,
		Description:         r.Description,
	}
}

type registerCompanyRequest struct {
	CommonDetails      commonDetailsRequest `json:"commonDetails"`
	NDAAgreed          bool                 `json:"ndaAgreed"`
	HeadOfficeLocation string               `json:"headOfficeLocation,omitempty"`
}

func (r registerCompanyRequest) Validate() error {
	return r.CommonDetails.validate()
}

func (r registerCompanyRequest) toInput() service.CompanyInput {
	return service.CompanyInput{
		Business:           r.CommonDetails.toInput(),
		NDAAgreed:          r.NDAAgreed,
		HeadOfficeLocation: r.HeadOfficeLocation,
	}
}

type registerIndividualRequest struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Email               string `json:"email"`
	Phone               string `json:"phone,omitempty"`
	Country             string `json:"country"`
	Location            string `json:"location,omitempty"`
	YearsOfExperienceID int64  `json:"yearsOfExperienceId"`
	FluencyLevel        string `json:"fluencyLevel,omitempty"`
	Availability        string `json:"availability,omitempty"`
	NetworkDescription  string `json:"networkDescription,omitempty"`
}

func (r registerIndividualRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return dErrors.New(dErrors.CodeValidation, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return dErrors.New(dErrors.CodeValidation, "lastName is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(r.Country) == "" {
		return dErrors.New(dErrors.CodeValidation, "country is required")
	}
	if r.YearsOfExperienceID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "yearsOfExperienceId is required")
	}
	return nil
}

func (r registerIndividualRequest) toInput() service.IndividualInput {
	return service.IndividualInput{
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Email:               r.Email,
		Phone:               r.Phone,
		Country:             r.Country,
		Location:            r.Location,
		YearsOfExperienceID: r.YearsOfExperienceID,
		FluencyLevel:        r.FluencyLevel,
		Availability:        r.Availability,
		NetworkDescription:  r.NetworkDescription,
	}
}

type registerOrganizationRequest struct {
	CommonDetails         commonDetailsRequest `json:"commonDetails"`
	BusinessStructureID   int64                `json:"businessStructureId"`
	EmployeeCount         string               `json:"employeeCount"`
	YearsOfExperienceID   int64                `json:"yearsOfExperienceId"`
	Availability          string               `json:"availability,omitempty"`
	ClientBaseDescription string               `json:"clientBaseDescription,omitempty"`
}

func (r registerOrganizationRequest) Validate() error {
	if err := r.CommonDetails.validate(); err != nil {
		return err
	}
	if r.BusinessStructureID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "businessStructureId is required")
	}
	if r.YearsOfExperienceID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "yearsOfExperienceId is required")
	}
	return nil
}

func (r registerOrganizationRequest) toInput() service.OrganizationInput {
	return service.OrganizationInput{
		Business:              r.CommonDetails.toInput(),
		BusinessStructureID:   r.BusinessStructureID,
		EmployeeCount:         r.EmployeeCount,
		YearsOfExperienceID:   r.YearsOfExperienceID,
		Availability:          r.Availability,
		ClientBaseDescription: r.ClientBaseDescription,
	}
}
