package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"newsdesk/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithUser(role models.Role) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	user := &models.User{ID: uuid.New(), Role: role}
	return r.WithContext(context.WithValue(r.Context(), UserKey, user))
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(okHandler())

	t.Run("no user rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("user passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithUser(models.RoleAuthor))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(models.RoleEditor, models.RoleAdmin)(okHandler())

	tests := []struct {
		name string
		role models.Role
		want int
	}{
		{"editor allowed", models.RoleEditor, http.StatusOK},
		{"admin allowed", models.RoleAdmin, http.StatusOK},
		{"author forbidden", models.RoleAuthor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithUser(tt.role))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	t.Run("no user unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestUserFromCtx(t *testing.T) {
	if UserFromCtx(context.Background()) != nil {
		t.Error("empty context should yield nil user")
	}

	r := requestWithUser(models.RoleAdmin)
	user := UserFromCtx(r.Context())
	if user == nil || user.Role != models.RoleAdmin {
		t.Errorf("user = %+v", user)
	}
}
