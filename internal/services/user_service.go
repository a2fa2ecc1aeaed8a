package services

import (
	"errors"
	"fmt"

	"minishop/internal/models"
	"minishop/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic for the user directory.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Register hashes the password and stores a new user. Duplicate usernames
// or emails return models.ErrDuplicateUser.
func (s *UserService) Register(req models.RegisterRequest) (*models.User, error) {
	if existing, err := s.userRepo.GetByUsername(req.Username); err == nil && existing != nil {
		return nil, models.ErrDuplicateUser
	}
	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, models.ErrDuplicateUser
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, models.ErrDuplicateUser) {
			return nil, models.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the matching user. An unknown
// username and a wrong password both return models.ErrInvalidCredentials.
func (s *UserService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a single user by ID.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
