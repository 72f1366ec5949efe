package auth

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/branchstock/branchstock-backend/internal/users"
	pkgauth "github.com/branchstock/branchstock-backend/pkg/auth"
	"github.com/branchstock/branchstock-backend/pkg/auth/session"
	"github.com/branchstock/branchstock-backend/pkg/config"
	"github.com/branchstock/branchstock-backend/pkg/db"
	"github.com/branchstock/branchstock-backend/pkg/db/models"
	pkgerrors "github.com/branchstock/branchstock-backend/pkg/errors"
	"github.com/branchstock/branchstock-backend/pkg/security"
)

// RegisterService handles account creation.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type registerUserRepository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
// UserRepoFactory defaults to the GORM-backed users repository.
type RegisterServiceParams struct {
	TxRunner        txRunner
	UserRepoFactory func(tx *gorm.DB) registerUserRepository
	SessionManager  sessionManager
	PasswordConfig  config.PasswordConfig
	JWTConfig       config.JWTConfig
}

type registerService struct {
	tx          txRunner
	userRepo    func(tx *gorm.DB) registerUserRepository
	session     sessionManager
	passwordCfg config.PasswordConfig
	jwtCfg      config.JWTConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.SessionManager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager required")
	}
	repoFactory := params.UserRepoFactory
	if repoFactory == nil {
		repoFactory = func(tx *gorm.DB) registerUserRepository {
			return users.NewRepository(tx)
		}
	}
	return &registerService{
		tx:          params.TxRunner,
		userRepo:    repoFactory,
		session:     params.SessionManager,
		passwordCfg: params.PasswordConfig,
		jwtCfg:      params.JWTConfig,
	}, nil
}

// Register creates the account inside a single transaction so that the
// first-account-becomes-admin check cannot race a concurrent signup.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	branch := strings.TrimSpace(req.Branch)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if branch == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.userRepo(tx)

		count, err := repo.Count(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
		}

		created, err = repo.Create(ctx, users.CreateUserDTO{
			Name:         name,
			Branch:       branch,
			PasswordHash: passwordHash,
			IsAdmin:      count == 0,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "idx_users_name") {
				return pkgerrors.New(pkgerrors.CodeConflict, "name already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, refresh, err := issueToken(ctx, s.jwtCfg, s.session, created)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, RefreshToken: refresh, User: users.FromModel(created)}, nil
}

func issueToken(ctx context.Context, cfg config.JWTConfig, sessions sessionManager, user *models.User) (string, string, error) {
	accessID := session.NewAccessID()

	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID:  user.ID,
		Branch:  user.Branch,
		IsAdmin: user.IsAdmin,
		JTI:     accessID,
	})
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	refresh, err := sessions.Generate(ctx, accessID)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	return token, refresh, nil
}
