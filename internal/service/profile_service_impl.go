package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/somnus/internal/domain"
	"github.com/alexanderramin/somnus/internal/repository"
	"github.com/google/uuid"
)

type profileService struct {
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewProfileService(users repository.UserRepo, observers ...UseCaseObserver) ProfileService {
	return &profileService{users: users, observer: firstObserver(observers)}
}

func (s *profileService) EnsureUser(ctx context.Context, username string) (u *domain.User, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	u, err = s.users.GetByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	defer observe(ctx, s.observer, "create-user", time.Now(), map[string]any{"username": username}, &err)
	u = &domain.User{
		ID:        uuid.New().String(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err = s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *profileService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *profileService) UpdateHeader(ctx context.Context, username string, displayName, headerID *string) (u *domain.User, err error) {
	defer observe(ctx, s.observer, "update-header", time.Now(), map[string]any{"username": username}, &err)

	u, err = s.EnsureUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if displayName != nil {
		u.DisplayName = strings.TrimSpace(*displayName)
	}
	if headerID != nil {
		u.HeaderID = strings.TrimSpace(*headerID)
	}
	if err = s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
