package provisioning

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gopal-gautam/empms-backend/internal/config"

	"github.com/auth0/go-auth0"
	"github.com/auth0/go-auth0/management"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeUsers struct {
	created []*management.User
	err     error
}

func (f *fakeUsers) Create(_ context.Context, u *management.User, _ ...management.RequestOption) error {
	if f.err != nil {
		return f.err
	}
	u.ID = auth0.String("auth0|new")
	f.created = append(f.created, u)
	return nil
}

type fakeTickets struct {
	issued []*management.Ticket
	err    error
}

func (f *fakeTickets) ChangePassword(_ context.Context, t *management.Ticket, _ ...management.RequestOption) error {
	if f.err != nil {
		return f.err
	}
	f.issued = append(f.issued, t)
	return nil
}

var testAuth0Config = config.Auth0Config{
	Domain:     "tenant.example.com",
	Connection: "Username-Password-Authentication",
	ResultURL:  "http://localhost:3000",
}

func TestAuth0Provisioner_CreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		users, tickets := &fakeUsers{}, &fakeTickets{}
		p := newAuth0Provisioner(users, tickets, testAuth0Config, zap.NewNop())

		err := p.CreateUser(context.Background(), "a@x.com", "Ann", "Lee")

		assert.NoError(t, err)
		assert.Len(t, users.created, 1)
		u := users.created[0]
		assert.Equal(t, "a@x.com", u.GetEmail())
		assert.Equal(t, "Ann Lee", u.GetName())
		assert.Equal(t, "Username-Password-Authentication", u.GetConnection())
		assert.False(t, u.GetEmailVerified())
		assert.Len(t, u.GetPassword(), temporaryPasswordLength)

		assert.Len(t, tickets.issued, 1)
		assert.Equal(t, "auth0|new", tickets.issued[0].GetUserID())
		assert.Equal(t, "http://localhost:3000", tickets.issued[0].GetResultURL())
	})

	t.Run("CreateFails", func(t *testing.T) {
		cause := errors.New("409 user already exists")
		tickets := &fakeTickets{}
		p := newAuth0Provisioner(&fakeUsers{err: cause}, tickets, testAuth0Config, zap.NewNop())

		err := p.CreateUser(context.Background(), "a@x.com", "Ann", "Lee")

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "failed to create identity provider user a@x.com")
		assert.Empty(t, tickets.issued)
	})

	t.Run("TicketFails", func(t *testing.T) {
		cause := errors.New("rate limited")
		p := newAuth0Provisioner(&fakeUsers{}, &fakeTickets{err: cause}, testAuth0Config, zap.NewNop())

		err := p.CreateUser(context.Background(), "a@x.com", "Ann", "Lee")

		assert.ErrorIs(t, err, cause)
	})
}

func TestNewProvisioner_NotConfigured(t *testing.T) {
	p, err := NewProvisioner(context.Background(), config.Auth0Config{}, zap.NewNop())

	assert.NoError(t, err)
	assert.IsType(t, &noopProvisioner{}, p)
	assert.NoError(t, p.CreateUser(context.Background(), "a@x.com", "Ann", "Lee"))
}

func TestGenerateTemporaryPassword(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := GenerateTemporaryPassword(16)

		assert.NoError(t, err)
		assert.Len(t, pw, 16)
		assert.True(t, strings.ContainsAny(pw, lowerChars))
		assert.True(t, strings.ContainsAny(pw, upperChars))
		assert.True(t, strings.ContainsAny(pw, digitChars))
		assert.True(t, strings.ContainsAny(pw, symbolChars))
		for _, r := range pw {
			assert.True(t, strings.ContainsRune(passwordSet, r))
		}
	}

	_, err := GenerateTemporaryPassword(3)
	assert.Error(t, err)
}
