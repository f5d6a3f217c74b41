package jwt

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service validates access tokens and exposes the identity claims the
// handlers need. Token issuance lives with the identity provider, not here.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	UserID(ctx context.Context) (string, error)
	Role(ctx context.Context) (string, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// UserID returns the user_id claim of the verified token in ctx.
func (j *JWTService) UserID(ctx context.Context) (string, error) {
	return claimString(ctx, "user_id")
}

// Role returns the role claim of the verified token in ctx.
func (j *JWTService) Role(ctx context.Context) (string, error) {
	return claimString(ctx, "role")
}

func claimString(ctx context.Context, name string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}

	value, ok := claims[name].(string)
	if !ok || value == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return value, nil
}
