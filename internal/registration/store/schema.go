package store

import _ "embed"

// Schema is the registration DDL. The unique constraints here are the
// authoritative uniqueness guards; the service's pre-checks are only a
// fail-fast optimization.
//
//go:embed schema.sql
var Schema string
