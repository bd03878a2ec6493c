package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/job-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator struct {
	validTokens map[string]types.Principal
}

func (v *testTokenValidator) ValidateToken(tokenString string) (PrincipalGetter, error) {
	p, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims{p}, nil
}

type testClaims struct {
	p types.Principal
}

func (c testClaims) GetPrincipal() types.Principal { return c.p }

func newValidator(tokens map[string]types.Principal) *testTokenValidator {
	return &testTokenValidator{validTokens: tokens}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	principal := types.Principal{ID: uuid.New(), Role: types.RoleRecruiter}
	validator := newValidator(map[string]types.Principal{"good": principal})

	var got types.Principal
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		got, err = GetPrincipal(r)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	for _, header := range []string{"Bearer good", "bearer good", "BEARER   good"} {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Equal(t, principal, got)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	validator := newValidator(map[string]types.Principal{
		"good":    {ID: uuid.New(), Role: types.RoleCandidate},
		"no-role": {ID: uuid.New()},
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good"},
		{"no token", "Bearer"},
		{"extra parts", "Bearer good extra"},
		{"unknown token", "Bearer forged"},
		{"token without role", "Bearer no-role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestGetPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetPrincipal(req)
	assert.Error(t, err)

	p := types.Principal{ID: uuid.New(), Role: types.RoleCandidate}
	req = req.WithContext(WithPrincipal(context.Background(), p))
	got, err := GetPrincipal(req)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	req = req.WithContext(context.WithValue(context.Background(), principalKey, "not a principal"))
	_, err = GetPrincipal(req)
	assert.Error(t, err)
}
