// Package services contains server-side business logic. UserService handles
// account creation, seeding and password login with JWT issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/opmlogin/internal/common"
	"github.com/dmitrijs2005/opmlogin/internal/dbx"
	"github.com/dmitrijs2005/opmlogin/internal/server/auth"
	"github.com/dmitrijs2005/opmlogin/internal/server/config"
	"github.com/dmitrijs2005/opmlogin/internal/server/models"
	"github.com/dmitrijs2005/opmlogin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/opmlogin/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// UserService verifies credentials and mints access tokens.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
	// compared against when the email is unknown so both paths pay for a hash
	dummyHash []byte
}

// NewUserService constructs a UserService. db may be nil when the manager
// does not need a connection (in-memory mode).
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	s := &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            bcrypt.DefaultCost,
	}
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), s.bcryptCost)
	return s
}

// Register creates a user with a bcrypt hash of password.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	return s.register(ctx, s.repomanager.Users(s.db), email, password)
}

func (s *UserService) register(ctx context.Context, repo users.Repository, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	u, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Seed creates the given users, skipping those that already exist. With a
// database connection all inserts share one transaction.
func (s *UserService) Seed(ctx context.Context, seeds []config.SeedUser) (int, error) {
	created := 0

	seed := func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		for _, su := range seeds {
			_, err := s.register(ctx, repo, su.Email, su.Password)
			if errors.Is(err, common.ErrorAlreadyExists) {
				continue
			}
			if err != nil {
				return err
			}
			created++
		}
		return nil
	}

	if s.db == nil {
		return created, seed(ctx, nil)
	}
	if err := dbx.WithTx(ctx, s.db, nil, seed); err != nil {
		return 0, err
	}
	return created, nil
}

// Login checks password against the stored hash and returns a signed token.
// Unknown emails and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
