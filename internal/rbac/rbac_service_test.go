package rbac

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gopal-gautam/empms-backend/internal/auth"
	autherrors "github.com/gopal-gautam/empms-backend/internal/auth/errors"
	"github.com/gopal-gautam/empms-backend/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestGuard(t *testing.T) Guard {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return NewGuard(e, zap.NewNop())
}

func TestGuard_Authorize(t *testing.T) {
	g := newTestGuard(t)
	g.Require("employees", RoleAdmin)
	g.Require("me.clock-in-outs", RoleEmployee)
	g.Require("public")

	tests := []struct {
		name     string
		identity *auth.Identity
		resource string
		wantErr  error
	}{
		{"NoRequirementAnonymous", nil, "public", nil},
		{"UndeclaredResource", nil, "unknown", nil},
		{"NoIdentity", nil, "employees", autherrors.ErrMissingIdentity},
		{"AdminAllowed", &auth.Identity{Subject: "a", Roles: []string{RoleAdmin}}, "employees", nil},
		{"EmployeeForbidden", &auth.Identity{Subject: "e", Roles: []string{RoleEmployee}}, "employees", autherrors.ErrForbidden},
		{"EmptyRolesDefaultToEmployee", &auth.Identity{Subject: "e"}, "me.clock-in-outs", nil},
		{"EmptyRolesNotAdmin", &auth.Identity{Subject: "e"}, "employees", autherrors.ErrForbidden},
		{"AnyRoleIntersects", &auth.Identity{Subject: "x", Roles: []string{"auditor", RoleAdmin}}, "employees", nil},
		{"UnknownRoleOnly", &auth.Identity{Subject: "x", Roles: []string{"auditor"}}, "me.clock-in-outs", autherrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Authorize(tt.identity, tt.resource)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestGuard_Require_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := newTestGuard(t)

	newRouter := func(identity *auth.Identity) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if identity != nil {
				auth.SetIdentity(c, identity)
			}
			c.Next()
		})
		r.GET("/employees", g.Require("employees", RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	t.Run("Unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&auth.Identity{Subject: "e"}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "You do not have permission to access this resource")
	})

	t.Run("Allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&auth.Identity{Subject: "a", Roles: []string{RoleAdmin}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
