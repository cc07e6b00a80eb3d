package jwt

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies dashboard access tokens. Tokens are minted by the
// identity provider, not by this engine; the same bearer token is
// forwarded to the remote time-tracking API on every gateway call.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

type rawTokenKey struct{}

// ContextWithRawToken stashes the caller's raw bearer token so the
// gateway client can forward it to the remote API.
func ContextWithRawToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, rawTokenKey{}, token)
}

// RawTokenFromContext returns the forwardable bearer token, empty when
// the request carried none.
func RawTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(rawTokenKey{}).(string)
	return token
}
