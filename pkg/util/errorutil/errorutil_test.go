package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/token-gate/internal/auth"
	"github.com/spec-kit/token-gate/internal/repository"
)

func TestToDomainError_TokenKinds(t *testing.T) {
	cases := map[error]string{
		auth.ErrMalformedToken:       "TOKEN_MALFORMED",
		auth.ErrInvalidSignature:     "TOKEN_INVALID_SIGNATURE",
		auth.ErrExpiredToken:         "TOKEN_EXPIRED",
		auth.ErrUnsupportedTokenType: "TOKEN_UNSUPPORTED",
	}
	for kind, code := range cases {
		de := ToDomainError(fmt.Errorf("%w: detail", kind))
		assert.Equal(t, code, de.Code)
		assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
		assert.Equal(t, "invalid bearer token", de.Message)
		assert.ErrorIs(t, de, kind)
	}
}

func TestToDomainError_Configuration(t *testing.T) {
	de := ToDomainError(fmt.Errorf("%w: empty secret", auth.ErrConfiguration))
	assert.Equal(t, "AUTH_MISCONFIGURED", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}

func TestToDomainError_StoreUnavailable(t *testing.T) {
	de := ToDomainError(fmt.Errorf("lookup: %w", repository.ErrStoreUnavailable))
	assert.Equal(t, "TOKEN_ISSUANCE_DISABLED", de.Code)
	assert.Equal(t, http.StatusServiceUnavailable, de.HTTPStatus)
	assert.ErrorIs(t, de, repository.ErrStoreUnavailable)
}

func TestToDomainError_Passthrough(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	original := NewUnauthorized("nope")
	assert.Same(t, original, ToDomainError(original))

	de := ToDomainError(fiber.NewError(http.StatusForbidden, "insufficient role"))
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Equal(t, "insufficient role", de.Message)

	de = ToDomainError(fiber.ErrNotFound)
	assert.Equal(t, "NOT_FOUND", de.Code)

	de = ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)

	de = ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "internal server error", de.Message)
}
