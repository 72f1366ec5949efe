package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/branchstock/branchstock-backend/internal/users"
	"github.com/branchstock/branchstock-backend/pkg/config"
	pkgmodels "github.com/branchstock/branchstock-backend/pkg/db/models"
	pkgerrors "github.com/branchstock/branchstock-backend/pkg/errors"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRegisterUserRepo struct {
	data      map[string]*pkgmodels.User
	created   *pkgmodels.User
	createErr error
}

func newStubRegisterUserRepo() *stubRegisterUserRepo {
	return &stubRegisterUserRepo{data: map[string]*pkgmodels.User{}}
}

func (s *stubRegisterUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.data)), nil
}

func (s *stubRegisterUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, exists := s.data[dto.Name]; exists {
		return nil, errors.New(`duplicate key value violates unique constraint "idx_users_name"`)
	}
	user := &pkgmodels.User{
		ID:           uuid.New(),
		Name:         dto.Name,
		Branch:       dto.Branch,
		PasswordHash: dto.PasswordHash,
		IsAdmin:      dto.IsAdmin,
	}
	s.data[dto.Name] = user
	s.created = user
	return user, nil
}

type stubSessionManager struct {
	generated []string
	revoked   []string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-token", nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func newRegisterTestService(t *testing.T, repo *stubRegisterUserRepo) (RegisterService, *stubSessionManager) {
	t.Helper()
	sessions := &stubSessionManager{}
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return repo
		},
		SessionManager: sessions,
		PasswordConfig: config.PasswordConfig{},
		JWTConfig:      config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return svc, sessions
}

func TestRegisterFirstAccountBecomesAdmin(t *testing.T) {
	repo := newStubRegisterUserRepo()
	svc, sessions := newRegisterTestService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "amira",
		Branch:   "downtown",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !resp.User.IsAdmin {
		t.Fatal("expected first account to be admin")
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected a refresh token")
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}
}

func TestRegisterSecondAccountIsNotAdmin(t *testing.T) {
	repo := newStubRegisterUserRepo()
	svc, _ := newRegisterTestService(t, repo)

	if _, err := svc.Register(context.Background(), RegisterRequest{Name: "amira", Branch: "downtown", Password: "Secret123!"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	resp, err := svc.Register(context.Background(), RegisterRequest{Name: "tariq", Branch: "harbor", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if resp.User.IsAdmin {
		t.Fatal("expected second account to be a regular user")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	repo := newStubRegisterUserRepo()
	svc, _ := newRegisterTestService(t, repo)

	if _, err := svc.Register(context.Background(), RegisterRequest{Name: "amira", Branch: "downtown", Password: "Secret123!"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "amira", Branch: "harbor", Password: "Other123!"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsBlankName(t *testing.T) {
	repo := newStubRegisterUserRepo()
	svc, _ := newRegisterTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "   ", Branch: "downtown", Password: "Secret123!"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
