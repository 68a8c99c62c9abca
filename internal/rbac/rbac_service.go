package rbac

import (
	"sync"

	"github.com/gopal-gautam/empms-backend/internal/auth"
	autherrors "github.com/gopal-gautam/empms-backend/internal/auth/errors"
	"github.com/gopal-gautam/empms-backend/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	// DefaultRole is assumed for callers whose token carries no roles.
	DefaultRole = RoleEmployee
)

type Guard interface {
	Require(resource string, roles ...string) gin.HandlerFunc
	Authorize(identity *auth.Identity, resource string) error
}

type guard struct {
	enforcer *casbin.SyncedEnforcer
	mu       sync.RWMutex
	declared map[string]struct{}
	logger   *zap.Logger
}

func NewGuard(enforcer *casbin.SyncedEnforcer, logger ...*zap.Logger) Guard {
	l := zap.L().Named("rbac.guard")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.guard")
	}
	return &guard{
		enforcer: enforcer,
		declared: make(map[string]struct{}),
		logger:   l,
	}
}

// Require declares which roles may reach resource and returns the gin
// middleware that enforces it. Declaring no roles leaves the resource open.
func (g *guard) Require(resource string, roles ...string) gin.HandlerFunc {
	if len(roles) > 0 {
		g.mu.Lock()
		g.declared[resource] = struct{}{}
		g.mu.Unlock()

		for _, role := range roles {
			if _, err := g.enforcer.AddPolicy(role, resource); err != nil {
				g.logger.Error("failed to register route policy",
					zap.String("role", role),
					zap.String("resource", resource),
					zap.Error(err),
				)
			}
		}
	}

	return g.middleware(resource)
}

func (g *guard) Authorize(identity *auth.Identity, resource string) error {
	g.mu.RLock()
	_, required := g.declared[resource]
	g.mu.RUnlock()
	if !required {
		return nil
	}

	if identity == nil {
		return autherrors.ErrMissingIdentity
	}

	roles := identity.Roles
	if len(roles) == 0 {
		roles = []string{DefaultRole}
	}

	for _, role := range roles {
		allowed, err := g.enforcer.Enforce(role, resource)
		if err != nil {
			return apperror.ErrInternal.WithCause(err)
		}
		if allowed {
			return nil
		}
	}

	g.logger.Debug("access denied",
		zap.String("subject", identity.Subject),
		zap.Strings("roles", roles),
		zap.String("resource", resource),
	)
	return autherrors.ErrForbidden
}
