package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"devmatch/internal/domain"
	"devmatch/internal/repository"
)

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ProfileEdit carries a partial profile update. Nil fields are left untouched.
type ProfileEdit struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Age        *int
	Gender     *string
	About      *string
	Skills     *[]string
	ProfilePic *string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, edit ProfileEdit) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)

	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidArgument)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, fmt.Errorf("%w: email is not valid", ErrInvalidArgument)
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Skills:       []string{},
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, edit ProfileEdit) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	if edit.FirstName != nil {
		user.FirstName = strings.TrimSpace(*edit.FirstName)
	}
	if edit.LastName != nil {
		user.LastName = strings.TrimSpace(*edit.LastName)
	}
	if edit.Email != nil {
		email := strings.TrimSpace(*edit.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: email is not valid", ErrInvalidArgument)
		}
		user.Email = email
	}
	if edit.Age != nil {
		if *edit.Age < 0 {
			return nil, fmt.Errorf("%w: age must not be negative", ErrInvalidArgument)
		}
		user.Age = *edit.Age
	}
	if edit.Gender != nil {
		user.Gender = strings.TrimSpace(*edit.Gender)
	}
	if edit.About != nil {
		user.About = *edit.About
	}
	if edit.Skills != nil {
		if len(*edit.Skills) > domain.MaxSkills {
			return nil, fmt.Errorf("%w: at most %d skills allowed", ErrInvalidArgument, domain.MaxSkills)
		}
		user.Skills = *edit.Skills
	}
	if edit.ProfilePic != nil {
		user.ProfilePic = strings.TrimSpace(*edit.ProfilePic)
	}
	if user.FirstName == "" || user.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidArgument)
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new passwords are required", ErrInvalidArgument)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidArgument)
	}
	return nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
