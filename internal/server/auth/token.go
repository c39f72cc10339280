package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: registered claims (sub, iat, exp) plus the
// identity fields verifying services read.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	IsDemo bool        `json:"isDemo"`
}

// TokenIssuer signs bearer tokens with a fixed secret and lifetime.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenIssuer returns an issuer that signs with secret (HS256) and sets
// every token to expire validity after issuance.
func NewTokenIssuer(secret []byte, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:   secret,
		validity: validity,
		now:      time.Now,
	}
}

// Issue returns a signed token for user.
func (i *TokenIssuer) Issue(user *models.User) (string, error) {
	if len(i.secret) == 0 {
		return "", common.ErrEmptySecret
	}
	if i.validity <= 0 {
		return "", common.ErrInvalidTokenValidity
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		IsDemo: user.IsDemo,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies tokenString against secret and returns its claims.
// Only HS256 tokens carrying an expiry are accepted. Expired tokens yield
// common.ErrTokenExpired; every other failure wraps common.ErrInvalidToken.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
