// Package auth implements the two security primitives of the server:
// signed bearer tokens (issue/verify) and salted password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/taskmanager/internal/common"
)

// Claims is the identity payload embedded in every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"id"`
	Email  string `json:"email"`
}

// TokenManager issues and verifies HMAC-signed bearer tokens. The signing
// secret and token lifetime are fixed at construction; nothing reads
// ambient environment at verification time.
type TokenManager struct {
	secretKey []byte
	validity  time.Duration
}

// NewTokenManager constructs a TokenManager with the given secret and
// token validity window.
func NewTokenManager(secretKey []byte, validity time.Duration) *TokenManager {
	return &TokenManager{secretKey: secretKey, validity: validity}
}

// Issue mints a signed token carrying the user's id and email, expiring
// after the configured validity window.
func (m *TokenManager) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks the token's signature and expiry and returns its claims.
// An expired-but-authentic token yields common.ErrTokenExpired; anything
// else that fails to parse or verify yields common.ErrTokenInvalid. The
// two stay distinct so the transport can surface a clear message.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}
