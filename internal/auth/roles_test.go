package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/token-gate/internal/auth"
)

func TestGuards(t *testing.T) {
	tm := newManager(t, "s3cr3t", nil)
	admin, err := tm.Encode(testIdentity{ID: "1", Username: "a", Groups: []string{"ADMIN"}})
	require.NoError(t, err)
	user, err := tm.Encode(testIdentity{ID: "2", Username: "u", Groups: []string{"USER"}})
	require.NoError(t, err)

	app := fiber.New()
	mw := auth.NewAuthMiddleware[testIdentity](tm, nil, nil)
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) }
	app.Get("/any", mw.Handle, auth.RequireAuthenticated(), ok)
	app.Get("/admin", mw.Handle, auth.RequireGrant("ROLE_ADMIN"), ok)

	cases := []struct {
		path   string
		token  string
		status int
	}{
		{"/any", "", http.StatusUnauthorized},
		{"/any", user, http.StatusNoContent},
		{"/admin", "", http.StatusUnauthorized},
		{"/admin", user, http.StatusForbidden},
		{"/admin", admin, http.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.token != "" {
			req.Header.Set(fiber.HeaderAuthorization, auth.BearerPrefix+tc.token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "%s with token=%t", tc.path, tc.token != "")
	}
}
