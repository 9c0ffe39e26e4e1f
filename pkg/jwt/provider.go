package jwt

import (
	"agenda/errs"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeAccess = "access"

var (
	ErrInvalidToken   = errs.Errorf(errs.EUNAUTHORIZED, "invalid token")
	ErrInvalidType    = errs.Errorf(errs.EUNAUTHORIZED, "invalid token type")
	ErrInvalidSubject = errs.Errorf(errs.EUNAUTHORIZED, "invalid token subject")
)

// JWTProvider issues and verifies HS256 access tokens whose subject is the
// caller identity used for caller-keyed records.
type JWTProvider struct {
	Secret    string
	AccessTTL time.Duration

	now func() time.Time
}

func NewJWTProvider(secret string, accessTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:    secret,
		AccessTTL: accessTTL,
		now:       time.Now,
	}
}

func (p *JWTProvider) GenerateAccessToken(caller string) (string, error) {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return "", ErrInvalidSubject
	}

	now := p.now()
	claims := jwt.MapClaims{
		"sub":  caller,
		"type": tokenTypeAccess,
		"iat":  now.Unix(),
		"exp":  now.Add(p.AccessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}

// ParseAccessToken verifies the signature and expiry of accessToken and
// returns its caller.
func (p *JWTProvider) ParseAccessToken(accessToken string) (string, error) {
	token, err := jwt.Parse(accessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(p.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	return Caller(token)
}

// Caller extracts the caller identity from a verified token, such as the
// one echo-jwt stores on the request context.
func Caller(token *jwt.Token) (string, error) {
	if token == nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	if claimType, ok := claims["type"].(string); ok && claimType != tokenTypeAccess {
		return "", ErrInvalidType
	}

	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return "", ErrInvalidSubject
	}
	return sub, nil
}
