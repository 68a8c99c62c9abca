package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	autherrors "github.com/gopal-gautam/empms-backend/internal/auth/errors"
	"github.com/gopal-gautam/empms-backend/internal/config"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

type jwtVerifier struct {
	keyfunc   jwt.Keyfunc
	options   []jwt.ParserOption
	namespace string
}

// NewVerifier picks the JWKS verifier when an issuer is configured and the
// shared-secret verifier otherwise.
func NewVerifier(ctx context.Context, cfg config.AuthConfig, logger *zap.Logger) (Verifier, error) {
	if cfg.IssuerURL != "" {
		logger.Info("token verification via issuer JWKS", zap.String("issuer", cfg.IssuerURL))
		return NewJWKSVerifier(ctx, cfg)
	}
	logger.Warn("token verification via shared HMAC secret; intended for local development only")
	return NewHMACVerifier(cfg.HMACSecret, cfg.ClaimsNamespace), nil
}

// NewJWKSVerifier verifies RS256 tokens against the issuer's published key
// set. Keys are cached and refreshed in the background until ctx is done.
func NewJWKSVerifier(ctx context.Context, cfg config.AuthConfig) (Verifier, error) {
	jwksURL := strings.TrimSuffix(cfg.IssuerURL, "/") + "/.well-known/jwks.json"
	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("auth: load jwks %s: %w", jwksURL, err)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(cfg.IssuerURL),
		jwt.WithExpirationRequired(),
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &jwtVerifier{
		keyfunc:   k.Keyfunc,
		options:   opts,
		namespace: cfg.ClaimsNamespace,
	}, nil
}

func NewHMACVerifier(secret, namespace string) Verifier {
	return &jwtVerifier{
		keyfunc: func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
		options:   []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})},
		namespace: namespace,
	}
}

func (v *jwtVerifier) Verify(_ context.Context, rawToken string) (*Identity, error) {
	token, err := jwt.Parse(rawToken, v.keyfunc, v.options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired.WithCause(err)
		}
		return nil, autherrors.ErrInvalidToken.WithCause(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	id := NormalizeClaims(claims, v.namespace)
	if id.Subject == "" {
		return nil, autherrors.ErrInvalidToken.WithCause(errors.New("missing sub claim"))
	}
	return &id, nil
}
