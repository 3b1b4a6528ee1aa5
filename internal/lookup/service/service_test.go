package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerhub/internal/lookup/models"
	"partnerhub/internal/lookup/store"
	dErrors "partnerhub/pkg/domain-errors"
)

func TestResolveCountry(t *testing.T) {
	r := New(store.NewInMemorySeeded())
	ctx := context.Background()

	t.Run("resolves by name case-insensitively", func(t *testing.T) {
		c, err := r.ResolveCountry(ctx, "india")
		require.NoError(t, err)
		assert.Equal(t, "India", c.Name)
		assert.Equal(t, "IN", c.Code)
	})

	t.Run("unknown country is a validation error", func(t *testing.T) {
		_, err := r.ResolveCountry(ctx, "Atlantis")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("empty country is a validation error", func(t *testing.T) {
		_, err := r.ResolveCountry(ctx, "  ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestResolveYearsOfExperience(t *testing.T) {
	catalog := store.NewInMemory()
	catalog.AddYearsOfExperience(&models.YearsOfExperience{ID: 2, Label: "3-5 years"})
	r := New(catalog)
	ctx := context.Background()

	t.Run("resolves existing bracket", func(t *testing.T) {
		y, err := r.ResolveYearsOfExperience(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "3-5 years", y.Label)
	})

	t.Run("missing bracket is a validation error", func(t *testing.T) {
		_, err := r.ResolveYearsOfExperience(ctx, 99)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("non-positive id is a validation error", func(t *testing.T) {
		_, err := r.ResolveYearsOfExperience(ctx, 0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestResolveBusinessStructure(t *testing.T) {
	catalog := store.NewInMemory()
	catalog.AddBusinessStructure(&models.BusinessStructure{ID: 3, Name: "Private Limited"})
	r := New(catalog)
	ctx := context.Background()

	t.Run("resolves existing structure", func(t *testing.T) {
		b, err := r.ResolveBusinessStructure(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Private Limited", b.Name)
	})

	t.Run("missing structure is a validation error", func(t *testing.T) {
		_, err := r.ResolveBusinessStructure(ctx, 404)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
