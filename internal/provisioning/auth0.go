package provisioning

import (
	"context"
	"fmt"
	"strings"

	"github.com/gopal-gautam/empms-backend/internal/config"
	"github.com/gopal-gautam/empms-backend/internal/shared/contextutil"

	"github.com/auth0/go-auth0"
	"github.com/auth0/go-auth0/management"
	"go.uber.org/zap"
)

const temporaryPasswordLength = 16

type userCreator interface {
	Create(ctx context.Context, u *management.User, opts ...management.RequestOption) error
}

type passwordTicketIssuer interface {
	ChangePassword(ctx context.Context, t *management.Ticket, opts ...management.RequestOption) error
}

type Auth0Provisioner struct {
	users      userCreator
	tickets    passwordTicketIssuer
	connection string
	resultURL  string
	logger     *zap.Logger
}

func NewAuth0Provisioner(ctx context.Context, cfg config.Auth0Config, logger *zap.Logger) (*Auth0Provisioner, error) {
	m, err := management.New(
		cfg.Domain,
		management.WithClientCredentials(ctx, cfg.ClientID, cfg.ClientSecret),
	)
	if err != nil {
		return nil, fmt.Errorf("provisioning: init management client: %w", err)
	}

	return newAuth0Provisioner(m.User, m.Ticket, cfg, logger), nil
}

func newAuth0Provisioner(users userCreator, tickets passwordTicketIssuer, cfg config.Auth0Config, logger *zap.Logger) *Auth0Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth0Provisioner{
		users:      users,
		tickets:    tickets,
		connection: cfg.Connection,
		resultURL:  cfg.ResultURL,
		logger:     logger,
	}
}

// CreateUser creates the account with a throwaway password and asks the
// provider for a change-password ticket so the user sets their own.
func (p *Auth0Provisioner) CreateUser(ctx context.Context, email, firstName, lastName string) error {
	logger := contextutil.GetLogger(ctx, p.logger)

	password, err := GenerateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("failed to create identity provider user %s: %w", email, err)
	}

	user := &management.User{
		Connection:    auth0.String(p.connection),
		Email:         auth0.String(email),
		GivenName:     auth0.String(firstName),
		FamilyName:    auth0.String(lastName),
		Name:          auth0.String(strings.TrimSpace(firstName + " " + lastName)),
		Password:      auth0.String(password),
		EmailVerified: auth0.Bool(false),
	}
	if err := p.users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create identity provider user %s: %w", email, err)
	}

	ticket := &management.Ticket{
		UserID:    user.ID,
		ResultURL: auth0.String(p.resultURL),
	}
	if err := p.tickets.ChangePassword(ctx, ticket); err != nil {
		return fmt.Errorf("failed to create identity provider user %s: password setup ticket: %w", email, err)
	}

	logger.Info("identity provider user created",
		zap.String("email", email),
		zap.String("provider_user_id", user.GetID()),
	)
	return nil
}
