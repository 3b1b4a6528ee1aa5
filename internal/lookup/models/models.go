// Package models defines the read-only lookup catalogs referenced by
// profile registrations. The catalogs are owned by an external data
// collaborator; this service only validates that referenced rows exist.
package models

// Country is a catalog row resolved by name.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// YearsOfExperience is an experience bracket, e.g. "3-5 years".
type YearsOfExperience struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// BusinessStructure is a legal structure, e.g. "Private Limited".
type BusinessStructure struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
