package echoapi

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/core/session"
)

const (
	contextTokenKey     = "userToken"
	contextWorkspaceKey = "workspace"
	tokenAudience       = "Phoebuz"
)

// jwtConfig returns the JWT auth middleware config.
func jwtConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// Claims represents the authorization claims transmitted via a JWT.
// The subject is the ID of the identity the study data belongs to.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}

func (c Claims) Identity() session.Identity {
	return session.Identity{ID: c.Subject, Email: c.Email}
}

// NewClaims returns claims for id, expiring after conf.Server.JWTExpiration.
func NewClaims(conf *core.Config, id session.Identity) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   strings.TrimSpace(id.ID),
			Audience:  tokenAudience,
			ExpiresAt: now.Add(conf.Server.JWTExpiration).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: strings.TrimSpace(id.Email),
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	cfg := jwtConfig(conf)
	token := jwt.NewWithClaims(jwt.GetSigningMethod(cfg.SigningMethod), claims)

	ss, err := token.SignedString(cfg.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
