package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/token-gate/internal/domain"
)

func TestUserRepository_WithoutPool(t *testing.T) {
	repo := NewUserRepository(nil)
	ctx := context.Background()

	user, err := repo.GetByUsername(ctx, "admin")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	assert.ErrorIs(t, repo.Create(ctx, &domain.User{Username: "admin"}), ErrStoreUnavailable)
}
