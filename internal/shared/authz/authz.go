// Package authz holds the ownership rule shared by post and comment mutations.
package authz

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotAuthor = errors.New("only the author can modify this resource")

// EnsureAuthor returns ErrNotAuthor unless viewer is the author
func EnsureAuthor(viewerID, authorID uuid.UUID) error {
	if viewerID == uuid.Nil || viewerID != authorID {
		return ErrNotAuthor
	}
	return nil
}
