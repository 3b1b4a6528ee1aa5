// Package audit captures key registration actions for the compliance
// trail. Events are emitted from domain logic and fanned out to a
// pluggable sink (in-process store or Kafka).
package audit

import (
	"time"

	id "partnerhub/pkg/domain"
)

// Action names a recorded domain action.
type Action string

const (
	// ActionProfileCreated records the signup hook creating a
	// provisional profile.
	ActionProfileCreated Action = "profile_created"
	// ActionProfileClassified records a completed registration.
	ActionProfileClassified Action = "profile_classified"
)

// Event is emitted from domain logic. Keep it transport-agnostic so
// sinks can fan out.
type Event struct {
	Timestamp      time.Time `json:"timestamp"`
	UserID         id.UserID `json:"user_id"`
	Action         Action    `json:"action"`
	Classification string    `json:"classification,omitempty"`
	RequestID      string    `json:"request_id,omitempty"`
}
