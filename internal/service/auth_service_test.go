package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aman-backend/internal/models"
	"aman-backend/internal/repository"
)

type memoryUserRepository struct {
	users map[uint]models.User
}

func newMemoryUserRepository(users ...models.User) *memoryUserRepository {
	repo := &memoryUserRepository{users: map[uint]models.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (m *memoryUserRepository) GetByEmail(email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUserRepository) GetByID(id uint) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return &user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUserRepository) ListByRole(role models.UserRole) ([]models.User, error) {
	var out []models.User
	for _, user := range m.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (m *memoryUserRepository) GetAll() ([]models.User, error) {
	var out []models.User
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

func (m *memoryUserRepository) Create(user *models.User) error {
	user.ID = uint(len(m.users) + 1)
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUserRepository) Update(user *models.User) error {
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUserRepository) Delete(id uint) error {
	delete(m.users, id)
	return nil
}

var _ repository.UserRepository = (*memoryUserRepository)(nil)

func newAuthFixture(t *testing.T, users ...models.User) (*AuthService, *memoryUserRepository) {
	t.Helper()
	repo := newMemoryUserRepository(users...)
	return NewAuthService(repo, "test-secret", 15*time.Minute), repo
}

func TestLogin_VerifiesPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	auth, _ := newAuthFixture(t, models.User{
		ID: 1, Email: "admin@aman.sa", Role: models.RoleAdmin,
		Status: "active", PasswordHash: string(hash),
	})

	if _, _, err := auth.Login(models.LoginRequest{Email: "admin@aman.sa", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}

	token, user, err := auth.Login(models.LoginRequest{Email: "  Admin@aman.sa ", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" || user.ID != 1 {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
	}

	parsed, err := auth.ValidateToken(token)
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token failed validation: %v", err)
	}
}

func TestLogin_RejectsDisabledAccounts(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-enough"), bcrypt.MinCost)
	auth, _ := newAuthFixture(t, models.User{
		ID: 1, Email: "admin@aman.sa", Role: models.RoleAdmin,
		Status: "disabled", PasswordHash: string(hash),
	})

	if _, _, err := auth.Login(models.LoginRequest{Email: "admin@aman.sa", Password: "secret-enough"}); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestIssueLoginCode_ClientsOnly(t *testing.T) {
	auth, _ := newAuthFixture(t,
		models.User{ID: 1, Email: "admin@aman.sa", Role: models.RoleAdmin, Status: "active"},
		models.User{ID: 2, Email: "client@corp.sa", Role: models.RoleClient, Status: "active"},
	)

	if _, err := auth.IssueLoginCode("admin@aman.sa"); err == nil {
		t.Fatal("expected error issuing a code for an admin")
	}

	code, err := auth.IssueLoginCode("client@corp.sa")
	if err != nil {
		t.Fatalf("IssueLoginCode returned error: %v", err)
	}
	if len(code) != 8 {
		t.Fatalf("expected 8-character code, got %q", code)
	}
	for _, r := range code {
		if !strings.ContainsRune(loginCodeAlphabet, r) {
			t.Fatalf("code %q contains character outside alphabet", code)
		}
	}
}

func TestIssueLoginCode_StoresHashNotPlaintext(t *testing.T) {
	auth, repo := newAuthFixture(t, models.User{
		ID: 2, Email: "client@corp.sa", Role: models.RoleClient, Status: "active",
	})

	code, err := auth.IssueLoginCode("client@corp.sa")
	if err != nil {
		t.Fatalf("IssueLoginCode returned error: %v", err)
	}

	stored := repo.users[2]
	if stored.LoginCodeHash == "" || stored.LoginCodeHash == code {
		t.Fatalf("stored value must be a hash, got %q", stored.LoginCodeHash)
	}
	if stored.LoginCodeExpiresAt == nil || !stored.LoginCodeExpiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry on the stored code")
	}
}

func TestLoginWithCode_SingleUse(t *testing.T) {
	auth, _ := newAuthFixture(t, models.User{
		ID: 2, Email: "client@corp.sa", Role: models.RoleClient, Status: "active",
	})

	code, err := auth.IssueLoginCode("client@corp.sa")
	if err != nil {
		t.Fatalf("IssueLoginCode returned error: %v", err)
	}

	// Codes are compared case-insensitively.
	token, user, err := auth.LoginWithCode(models.CodeLoginRequest{
		Email: "client@corp.sa", Code: strings.ToLower(code),
	})
	if err != nil {
		t.Fatalf("LoginWithCode returned error: %v", err)
	}
	if token == "" || user.Role != models.RoleClient {
		t.Fatalf("unexpected result: token=%q role=%s", token, user.Role)
	}

	if _, _, err := auth.LoginWithCode(models.CodeLoginRequest{Email: "client@corp.sa", Code: code}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("second use of the same code must fail, got %v", err)
	}
}

func TestLoginWithCode_Expiry(t *testing.T) {
	repo := newMemoryUserRepository(models.User{
		ID: 2, Email: "client@corp.sa", Role: models.RoleClient, Status: "active",
	})
	auth := NewAuthService(repo, "test-secret", time.Minute)

	code, err := auth.IssueLoginCode("client@corp.sa")
	if err != nil {
		t.Fatalf("IssueLoginCode returned error: %v", err)
	}

	user := repo.users[2]
	past := time.Now().Add(-time.Minute)
	user.LoginCodeExpiresAt = &past
	repo.users[2] = user

	if _, _, err := auth.LoginWithCode(models.CodeLoginRequest{Email: "client@corp.sa", Code: code}); !errors.Is(err, ErrLoginCodeExpired) {
		t.Fatalf("expected ErrLoginCodeExpired, got %v", err)
	}
}

func TestLoginWithCode_WrongCode(t *testing.T) {
	auth, _ := newAuthFixture(t, models.User{
		ID: 2, Email: "client@corp.sa", Role: models.RoleClient, Status: "active",
	})

	if _, err := auth.IssueLoginCode("client@corp.sa"); err != nil {
		t.Fatalf("IssueLoginCode returned error: %v", err)
	}

	if _, _, err := auth.LoginWithCode(models.CodeLoginRequest{Email: "client@corp.sa", Code: "WRONGCOD"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong code, got %v", err)
	}
}
