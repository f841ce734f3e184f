// Package service holds the board's business rules on top of the repositories:
// who may change what, how due status is attached to tasks, and which
// notifications a change produces.
package service

import (
	"fmt"

	"choreboard/internal/domain"
)

// fails with ErrForbidden unless the actor is a manager
func requireManager(actor *domain.User) error {
	if actor == nil {
		return fmt.Errorf("no authenticated user: %w", domain.ErrUnauthorized)
	}
	if !actor.IsManager {
		return fmt.Errorf("manager role required: %w", domain.ErrForbidden)
	}
	return nil
}

func requireUser(actor *domain.User) error {
	if actor == nil {
		return fmt.Errorf("no authenticated user: %w", domain.ErrUnauthorized)
	}
	return nil
}
