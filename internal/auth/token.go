package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/golang-jwt/jwt/v4"

	"choreboard/internal/domain"
)

const DefaultTokenExpiry = 7 * 24 * time.Hour

// session claims carried by every API token
type Claims struct {
	UserID          int64  `json:"user_id"`
	ApartmentNumber string `json:"apartment_number"`
	jwt.RegisteredClaims
}

// signs and verifies HS256 session tokens
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	clock  clock.Clock
}

func NewTokenIssuer(secret string, expiry time.Duration, c clock.Clock) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not set")
	}
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	if c == nil {
		c = clock.C
	}

	return &TokenIssuer{secret: []byte(secret), expiry: expiry, clock: c}, nil
}

func (ti *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := ti.clock.Now()
	claims := Claims{
		UserID:          user.ID,
		ApartmentNumber: user.ApartmentNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// validates signature and expiry against the issuer's clock
func (ti *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	// time claims are checked below against the issuer's clock
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return ti.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %v", domain.ErrForbidden, err)
	}

	if claims.ExpiresAt == nil || !ti.clock.Now().Before(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: token expired", domain.ErrForbidden)
	}

	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: token has no user", domain.ErrForbidden)
	}

	return claims, nil
}
