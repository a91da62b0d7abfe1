// Package id generates identifiers for rows and stored objects.
package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.Reader, 0)
)

// GetUUID returns a random version 4 uuid in canonical form. It is used as the primary key of settings rows.
func GetUUID() string {
	return uuid.New().String()
}

// GetUlid returns a lexically sortable, time-ordered unique id.
// Ids generated within the same millisecond stay strictly increasing.
func GetUlid() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), ulidEntropy)
	if err != nil {
		return ""
	}
	return id.String()
}
