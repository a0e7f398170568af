package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aman-backend/internal/models"
	"aman-backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginCodeExpired   = errors.New("login code expired")
	ErrUserDisabled       = errors.New("account is disabled")
)

const loginCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type AuthService struct {
	userRepo     repository.UserRepository
	jwtSecret    string
	loginCodeTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, loginCodeTTL time.Duration) *AuthService {
	if loginCodeTTL <= 0 {
		loginCodeTTL = 15 * time.Minute
	}
	return &AuthService{
		userRepo:     userRepo,
		jwtSecret:    jwtSecret,
		loginCodeTTL: loginCodeTTL,
	}
}

// Login authenticates an admin by email and password.
func (s *AuthService) Login(req models.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Status != "active" {
		return "", nil, ErrUserDisabled
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueLoginCode generates a single-use, expiring login code for a client.
// Only the bcrypt hash is stored; the plaintext is returned once so the admin
// can hand it to the client out of band.
func (s *AuthService) IssueLoginCode(email string) (string, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if user.Role != models.RoleClient {
		return "", errors.New("login codes are issued to clients only")
	}

	code, err := generateLoginCode(8)
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	expires := time.Now().Add(s.loginCodeTTL)
	user.LoginCodeHash = string(hash)
	user.LoginCodeExpiresAt = &expires

	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}
	return code, nil
}

// LoginWithCode exchanges a client's email and login code for a token. Codes
// are single-use: a successful exchange clears the stored hash.
func (s *AuthService) LoginWithCode(req models.CodeLoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.LoginCodeHash == "" || user.LoginCodeExpiresAt == nil {
		return "", nil, ErrInvalidCredentials
	}
	if time.Now().After(*user.LoginCodeExpiresAt) {
		return "", nil, ErrLoginCodeExpired
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := bcrypt.CompareHashAndPassword([]byte(user.LoginCodeHash), []byte(code)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Status != "active" {
		return "", nil, ErrUserDisabled
	}

	user.LoginCodeHash = ""
	user.LoginCodeExpiresAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
}

func generateLoginCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate login code: %w", err)
	}
	code := make([]byte, length)
	for i, b := range buf {
		code[i] = loginCodeAlphabet[int(b)%len(loginCodeAlphabet)]
	}
	return string(code), nil
}
