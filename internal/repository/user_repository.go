package repository

import (
	"context"

	"choreboard/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByApartment(ctx context.Context, apartmentNumber string) (*domain.User, error)

	// newest first, with completion counts filled in
	List(ctx context.Context) ([]*domain.User, error)

	ListManagers(ctx context.Context) ([]*domain.User, error)
	HasManager(ctx context.Context) (bool, error)
}
