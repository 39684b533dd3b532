package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/model"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func okHandler(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if wantUser != "" {
			assert.NotNil(t, user)
			assert.Equal(t, wantUser, user.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_Handler(t *testing.T) {
	t.Run("missing header returns 401", func(t *testing.T) {
		m := NewAuthMiddleware(new(mockValidator))

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		rec := httptest.NewRecorder()
		m.Handler(okHandler(t, "")).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header returns 401", func(t *testing.T) {
		m := NewAuthMiddleware(new(mockValidator))

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		m.Handler(okHandler(t, "")).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token returns 401", func(t *testing.T) {
		validator := new(mockValidator)
		validator.On("ValidateToken", mock.Anything, "bad-token").
			Return(nil, apperrors.InvalidToken("Invalid or expired token"))
		m := NewAuthMiddleware(validator)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		m.Handler(okHandler(t, "")).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token puts user in context", func(t *testing.T) {
		validator := new(mockValidator)
		validator.On("ValidateToken", mock.Anything, "good-token").
			Return(&model.User{ID: "u1", Role: model.UserRoleStaff}, nil)
		m := NewAuthMiddleware(validator)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		m.Handler(okHandler(t, "u1")).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	t.Run("staff user is forbidden", func(t *testing.T) {
		m := NewAuthMiddleware(new(mockValidator))

		req := httptest.NewRequest(http.MethodPost, "/admin/backup", nil)
		ctx := context.WithValue(req.Context(), UserContextKey, &model.User{ID: "u1", Role: model.UserRoleStaff})
		rec := httptest.NewRecorder()
		m.RequireAdmin(okHandler(t, "")).ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin user passes", func(t *testing.T) {
		m := NewAuthMiddleware(new(mockValidator))

		req := httptest.NewRequest(http.MethodPost, "/admin/backup", nil)
		ctx := context.WithValue(req.Context(), UserContextKey, &model.User{ID: "u1", Role: model.UserRoleAdmin})
		rec := httptest.NewRecorder()
		m.RequireAdmin(okHandler(t, "")).ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no user returns 401", func(t *testing.T) {
		m := NewAuthMiddleware(new(mockValidator))

		req := httptest.NewRequest(http.MethodPost, "/admin/backup", nil)
		rec := httptest.NewRecorder()
		m.RequireAdmin(okHandler(t, "")).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard bearer", "Bearer abc123", "abc123"},
		{"case insensitive scheme", "bearer abc123", "abc123"},
		{"empty header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, extractToken(req))
		})
	}
}
