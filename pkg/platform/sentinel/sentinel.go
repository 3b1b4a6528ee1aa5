package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these
// (optionally wrapped) so services can translate them into domain
// errors without inspecting driver-specific types.
//
// These represent factual states about stored resources:
//   - ErrNotFound: row does not exist
//   - ErrConflict: a unique constraint or conditional update rejected the write
//   - ErrAlreadyClassified: profile classification is no longer PENDING
//
// For caller-input validation use pkg/domain-errors directly.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrAlreadyClassified = errors.New("already classified")
)
