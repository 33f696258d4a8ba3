package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndCompare(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.Error(t, h.Compare(hash, "wrong horse"))
}

func TestBcryptCostIsClamped(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewBcryptPasswordHasherWithCost(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptPasswordHasherWithCost(99).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher().cost)
}
