package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aman-backend/internal/models"
	"aman-backend/internal/repository"
)

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	if repo == nil {
		return nil
	}
	return &UserService{repo: repo}
}

func (s *UserService) List(role string) ([]models.User, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return s.repo.GetAll()
	}
	return s.repo.ListByRole(models.UserRole(role))
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *UserService) Create(req models.CreateUserRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(email)
	if err == nil && existing != nil {
		return nil, errors.New("user with this email already exists")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := models.RoleClient
	if models.UserRole(req.Role) == models.RoleAdmin {
		role = models.RoleAdmin
	}

	user := &models.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Company:  strings.TrimSpace(req.Company),
		Role:     role,
		Status:   "active",
	}

	// Admins carry a password; clients authenticate with issued login codes.
	if role == models.RoleAdmin {
		if len(req.Password) < 12 {
			return nil, errors.New("admin password must be at least 12 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(id uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Phone = strings.TrimSpace(req.Phone)
	user.Company = strings.TrimSpace(req.Company)
	if req.Status != nil {
		switch *req.Status {
		case "active", "disabled":
			user.Status = *req.Status
		default:
			return nil, errors.New("unknown user status")
		}
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	return s.repo.Delete(id)
}
