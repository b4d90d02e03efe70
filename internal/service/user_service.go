package service

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles account registration under a fixed capacity cap.
type UserService struct {
	users    repository.UserRepository
	maxUsers int
}

func NewUserService(users repository.UserRepository, maxUsers int) *UserService {
	if maxUsers < 1 {
		maxUsers = 1
	}
	return &UserService{users: users, maxUsers: maxUsers}
}

// Register creates a new account. The capacity check runs before any
// other work so a full deployment rejects immediately.
func (s *UserService) Register(ctx context.Context, in validation.RegisterInput) (*models.User, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if count >= int64(s.maxUsers) {
		return nil, models.NewCapacityError("Maximum number of users reached")
	}

	if fields := validation.ValidateRegister(in); len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	birthDate, err := time.Parse("2006-01-02", in.BirthDate)
	if err != nil {
		return nil, models.NewFieldValidationError(map[string]string{
			"birth_date": "The birth date does not match the format Y-m-d.",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:      in.Name,
		Age:       in.Age,
		BirthDate: birthDate,
		Phone:     in.Phone,
		Email:     in.Email,
		Password:  string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewFieldValidationError(map[string]string{
				"email": "The email has already been taken.",
			})
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// Get returns the account for an authenticated user id.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if _, ok := err.(*models.AppError); ok {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}
