package provisioning

import (
	"context"

	"github.com/gopal-gautam/empms-backend/internal/config"
	"github.com/gopal-gautam/empms-backend/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=provisioner.go -destination=mock/provisioner_mock.go -package=mock
type Provisioner interface {
	CreateUser(ctx context.Context, email, firstName, lastName string) error
}

// NewProvisioner returns the Auth0-backed client when the management
// credentials are configured and a logging no-op otherwise.
func NewProvisioner(ctx context.Context, cfg config.Auth0Config, logger ...*zap.Logger) (Provisioner, error) {
	l := zap.L().Named("provisioning")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("provisioning")
	}

	if !cfg.Configured() {
		l.Warn("identity provider management credentials not configured; user provisioning is disabled")
		return &noopProvisioner{logger: l}, nil
	}

	return NewAuth0Provisioner(ctx, cfg, l)
}

type noopProvisioner struct {
	logger *zap.Logger
}

func (p *noopProvisioner) CreateUser(ctx context.Context, email, _, _ string) error {
	contextutil.GetLogger(ctx, p.logger).Warn("skipping identity provider user creation; provider not configured",
		zap.String("email", email),
	)
	return nil
}
