// Package ids mints identifiers for entities the caller does not supply
// one for, the same uuid.NewString idiom the ambient stack's repositories
// use when inserting a new row.
package ids

import "github.com/google/uuid"

// NewVersionID mints an identifier for a store.TimetableVersion.
func NewVersionID() string {
	return uuid.NewString()
}
