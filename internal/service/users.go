package service

import (
	"context"
	"fmt"

	"dining-reviews/internal/auth"
	"dining-reviews/internal/database"
	"dining-reviews/internal/models"
)

type UserService struct {
	users  UserStore
	auth   *AuthService
	images ImageChecker
}

func NewUserService(users UserStore, authService *AuthService, images ImageChecker) *UserService {
	return &UserService{users: users, auth: authService, images: images}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, nil
}

func (s *UserService) GetByToken(ctx context.Context, token string) (*models.User, error) {
	id, err := s.auth.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

type UpdateUserInput struct {
	Username string
	Password string
	ImageID  *string
}

// Update replaces the password and profile image of the named user.
func (s *UserService) Update(ctx context.Context, in UpdateUserInput) error {
	if err := checkImageRef(ctx, s.images, in.ImageID); err != nil {
		return err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	ok, err := s.users.UpdateUserByUsername(ctx, database.UpdateUserParams{
		Username:       in.Username,
		PasswordHash:   hash,
		ProfileImageID: in.ImageID,
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: user %q", ErrNotFound, in.Username)
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.DeleteUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	return user, nil
}
