package store

import _ "embed"

// Schema is the catalog DDL plus seed rows. Applied by migrations
// tooling in deployment and by the integration test containers.
//
//go:embed schema.sql
var Schema string
