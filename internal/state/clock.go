package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var lastRevision atomic.Uint64

// NewSessionID returns a unique id for one editing session. Log records
// carry it so output from several windows stays apart.
func NewSessionID() string {
	return uuid.NewString()
}

// nextRevision hands out process-wide increasing revision numbers, so two
// collections never share a revision even across sessions.
func nextRevision() uint64 {
	return lastRevision.Add(1)
}
