package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/WatchBeam/clock"
	"github.com/rs/zerolog"

	"choreboard/internal/auth"
	"choreboard/internal/domain"
	"choreboard/internal/repository"
)

const recentCompletionsLimit = 10

// the user and a bearer token for them
type Session struct {
	User  *domain.User
	Token string
}

type UserService struct {
	users      repository.UserRepository
	stats      repository.StatisticsRepository
	issuer     *auth.TokenIssuer
	bcryptCost int
	clock      clock.Clock
	logger     zerolog.Logger
}

func NewUserService(repos repository.Repositories, issuer *auth.TokenIssuer, bcryptCost int, c clock.Clock, logger zerolog.Logger) *UserService {
	if c == nil {
		c = clock.C
	}
	return &UserService{
		users:      repos.Users,
		stats:      repos.Statistics,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		clock:      c,
		logger:     logger,
	}
}

// self-registration always creates a resident, never a manager
func (s *UserService) Register(ctx context.Context, name, apartment, password string) (*Session, error) {
	user, err := s.CreateUser(ctx, name, apartment, password, false)
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

// creates an account with the given role; used by the cli and seeding
func (s *UserService) CreateUser(ctx context.Context, name, apartment, password string, manager bool) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:            strings.TrimSpace(name),
		ApartmentNumber: strings.TrimSpace(apartment),
		PasswordHash:    hash,
		IsManager:       manager,
		CreatedAt:       s.clock.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("apartment %s is already registered: %w", user.ApartmentNumber, domain.ErrConflict)
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("apartment", user.ApartmentNumber).Bool("manager", manager).Msg("user created")
	return user, nil
}

func (s *UserService) Login(ctx context.Context, apartment, password string) (*Session, error) {
	user, err := s.users.GetByApartment(ctx, strings.TrimSpace(apartment))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid apartment number or password: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Debug().Str("apartment", user.ApartmentNumber).Msg("login rejected")
		return nil, fmt.Errorf("invalid apartment number or password: %w", domain.ErrUnauthorized)
	}

	return s.session(user)
}

// resolves a bearer token to its user
func (s *UserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("token user no longer exists: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

// the actor as currently stored
func (s *UserService) Me(ctx context.Context, actor *domain.User) (*domain.User, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, actor.ID)
}

// re-checks the password of a manager before a sensitive action
func (s *UserService) VerifyManager(ctx context.Context, actor *domain.User, password string) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	if !auth.CheckPassword(actor.PasswordHash, password) {
		return fmt.Errorf("invalid password: %w", domain.ErrUnauthorized)
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// completion totals and the latest completions of the actor
func (s *UserService) Stats(ctx context.Context, actor *domain.User) (*domain.UserStats, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	return s.stats.GetUserStatistics(ctx, actor.ID, recentCompletionsLimit, s.clock.Now())
}

func (s *UserService) session(user *domain.User) (*Session, error) {
	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}
