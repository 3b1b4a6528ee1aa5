package store

import (
	"context"
	"strings"
	"sync"

	"partnerhub/internal/lookup/models"
	"partnerhub/pkg/platform/sentinel"
)

// InMemory is a catalog store for tests and local development.
type InMemory struct {
	mu         sync.RWMutex
	countries  map[string]*models.Country
	experience map[int64]*models.YearsOfExperience
	structures map[int64]*models.BusinessStructure
}

// NewInMemory constructs an empty in-memory catalog store.
func NewInMemory() *InMemory {
	return &InMemory{
		countries:  make(map[string]*models.Country),
		experience: make(map[int64]*models.YearsOfExperience),
		structures: make(map[int64]*models.BusinessStructure),
	}
}

// NewInMemorySeeded constructs an in-memory store preloaded with the
// same catalog rows the SQL schema seeds.
func NewInMemorySeeded() *InMemory {
	s := NewInMemory()
	for i, label := range []string{"0-2 years", "3-5 years", "6-10 years", "11-15 years", "15+ years"} {
		s.AddYearsOfExperience(&models.YearsOfExperience{ID: int64(i + 1), Label: label})
	}
	for i, name := range []string{"Sole Proprietorship", "Partnership", "Private Limited", "Public Limited", "LLP"} {
		s.AddBusinessStructure(&models.BusinessStructure{ID: int64(i + 1), Name: name})
	}
	countries := []models.Country{
		{Name: "India", Code: "IN"},
		{Name: "United States", Code: "US"},
		{Name: "United Kingdom", Code: "GB"},
		{Name: "Singapore", Code: "SG"},
		{Name: "United Arab Emirates", Code: "AE"},
		{Name: "Germany", Code: "DE"},
		{Name: "Australia", Code: "AU"},
	}
	for i := range countries {
		c := countries[i]
		c.ID = int64(i + 1)
		s.AddCountry(&c)
	}
	return s
}

func (s *InMemory) AddCountry(c *models.Country) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries[strings.ToLower(c.Name)] = c
}

func (s *InMemory) AddYearsOfExperience(y *models.YearsOfExperience) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experience[y.ID] = y
}

func (s *InMemory) AddBusinessStructure(b *models.BusinessStructure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.structures[b.ID] = b
}

func (s *InMemory) CountryByName(_ context.Context, name string) (*models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.countries[strings.ToLower(name)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c, nil
}

func (s *InMemory) YearsOfExperienceByID(_ context.Context, id int64) (*models.YearsOfExperience, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	y, ok := s.experience[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return y, nil
}

func (s *InMemory) BusinessStructureByID(_ context.Context, id int64) (*models.BusinessStructure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.structures[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return b, nil
}
