package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEnsureAuthor(t *testing.T) {
	author := uuid.New()

	assert.NoError(t, EnsureAuthor(author, author))
	assert.ErrorIs(t, EnsureAuthor(uuid.New(), author), ErrNotAuthor)
	assert.ErrorIs(t, EnsureAuthor(uuid.Nil, uuid.Nil), ErrNotAuthor)
}
