package services

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"academic-hub/internal/application/ports"
	domain "academic-hub/internal/domain/user"
)

type UserService struct {
	userRepository domain.Repository
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) Register(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	u, err := us.userRepository.CreateUser(ctx, normalizeEmail(email), passwordHash)
	if err != nil {
		return nil, err
	}

	us.mCounter.WithLabelValues("user_registered_total").Inc()

	return u, nil
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }
