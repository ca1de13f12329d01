package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTTL    = 24 * time.Hour
	tokenIssuer = "foodbank"
)

var (
	ErrSecretNotSet = errors.New("JWT_SECRET not set")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims carries the session owner. Subject mirrors UserID.
type Claims struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// signingKey is read on every call so a rotated secret takes effect
// without a restart.
func signingKey() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrSecretNotSet
	}
	return []byte(secret), nil
}

// GenerateToken signs an HS256 session token valid for tokenTTL.
func GenerateToken(userID, email string) (string, error) {
	if userID == "" {
		return "", errors.New("cannot issue a token without a user id")
	}

	key, err := signingKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken returns the user id and email of a live token. Any parse,
// signature or expiry failure is reported as ErrInvalidToken.
func ValidateToken(tokenString string) (userID, email string, err error) {
	key, err := signingKey()
	if err != nil {
		return "", "", err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.UserID == "" {
		return "", "", fmt.Errorf("%w: no user", ErrInvalidToken)
	}
	return claims.UserID, claims.Email, nil
}
