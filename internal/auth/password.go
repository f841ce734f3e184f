package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"choreboard/internal/domain"
)

const DefaultBcryptCost = 10

// hashes a plaintext password after checking the length rules
func HashPassword(password string, cost int) ([]byte, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if cost == 0 {
		cost = DefaultBcryptCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password cannot exceed 72 bytes", domain.ErrValidation)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return hashed, nil
}

// reports whether password matches the stored hash
func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
