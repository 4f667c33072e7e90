package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dining-reviews/internal/auth"
	"dining-reviews/internal/database"
	"dining-reviews/internal/models"
)

// ImageChecker reports whether an image id refers to a stored image.
type ImageChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type AuthService struct {
	users  UserStore
	images ImageChecker
	secret string
	ttl    time.Duration
}

func NewAuthService(users UserStore, images ImageChecker, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, images: images, secret: secret, ttl: ttl}
}

type RegisterInput struct {
	Username string
	Password string
	ImageID  *string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.users.GetUserByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is already taken", ErrConflict, in.Username)
	}

	if err := checkImageRef(ctx, s.images, in.ImageID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, database.CreateUserParams{
		Username:       in.Username,
		PasswordHash:   hash,
		ProfileImageID: in.ImageID,
	})
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			return nil, fmt.Errorf("%w: username %q is already taken", ErrConflict, in.Username)
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	token, err := auth.GenerateJWT(user, s.secret, s.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("generating token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) Claims(token string) (*auth.AppClaims, error) {
	claims, err := auth.VerifyJWT(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return claims, nil
}

// Verify returns the user id embedded in a valid token.
func (s *AuthService) Verify(token string) (int64, error) {
	claims, err := s.Claims(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func checkImageRef(ctx context.Context, images ImageChecker, id *string) error {
	if id == nil {
		return nil
	}
	exists, err := images.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: image %q does not exist", ErrInvalidInput, *id)
	}
	return nil
}
