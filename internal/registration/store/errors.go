package store

import (
	"fmt"

	"partnerhub/pkg/platform/sentinel"
)

// Field-specific conflict errors. Both store implementations return
// these so the service can report which uniqueness invariant an insert
// violated; all of them satisfy errors.Is(err, sentinel.ErrConflict).
var (
	ErrDuplicateRegistrationNumber = fmt.Errorf("%w: registration number already in use", sentinel.ErrConflict)
	ErrDuplicateContactEmail       = fmt.Errorf("%w: business contact email already in use", sentinel.ErrConflict)
	ErrDuplicateIndividualEmail    = fmt.Errorf("%w: email already registered by another partner", sentinel.ErrConflict)
)
