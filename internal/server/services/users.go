// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login (including the check-in
// streak), and issuing/rotating JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/focussync/internal/common"
	"github.com/dmitrijs2005/focussync/internal/cryptox"
	"github.com/dmitrijs2005/focussync/internal/dbx"
	"github.com/dmitrijs2005/focussync/internal/model"
	"github.com/dmitrijs2005/focussync/internal/server/auth"
	"github.com/dmitrijs2005/focussync/internal/server/config"
	"github.com/dmitrijs2005/focussync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focussync/internal/streak"
)

const saltSize = 16

// UserService provides authentication-related operations:
//   - Register: create accounts and mint the first token pair
//   - Login: verify credentials, update the check-in streak, mint tokens
//   - RotateRefresh: consume a refresh token and mint a new pair
//   - VerifyAccess: stateless access-token check for the hot path
type UserService struct {
	manager                      repomanager.RepositoryManager
	locks                        *KeyedMutex
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server
// config. The KeyedMutex is shared with the sync service so rotation and
// reconciliation for one user serialize.
func NewUserService(m repomanager.RepositoryManager, locks *KeyedMutex, cfg *config.Config) *UserService {
	return &UserService{
		manager:                      m,
		locks:                        locks,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// withTx runs fn inside a transaction for database-backed managers; the
// in-memory manager has no connection and fn runs directly with a nil handle.
func (s *UserService) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	db := s.manager.Conn()
	if db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, db, fn)
}

// Register creates a new account and returns it with its first token pair.
// Missing fields yield common.ErrorValidation; a duplicate email yields
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password, displayName string) (*model.User, *model.TokenPair, error) {
	if email == "" || password == "" || displayName == "" {
		return nil, nil, fmt.Errorf("%w: email, password and displayName are required", common.ErrorValidation)
	}

	salt := common.GenerateRandByteArray(saltSize)
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: cryptox.HashPassword([]byte(password), salt),
		PasswordSalt: salt,
	}

	var pair *model.TokenPair
	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.manager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created
		pair, err = s.issue(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, nil, common.ErrorAlreadyExists
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, pair, nil
}

// Login verifies the credentials, applies the check-in streak, and returns
// the user with a fresh token pair. Bad credentials yield
// common.ErrorUnauthorized without revealing which field was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, *model.TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	user, err := s.manager.Users(s.manager.Conn()).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}
	if !cryptox.VerifyPassword([]byte(password), user.PasswordSalt, user.PasswordHash) {
		return nil, nil, common.ErrorUnauthorized
	}

	r := streak.Update(user.CurrentStreak, user.LongestStreak, user.LastCheckIn, time.Now())
	user.CurrentStreak = r.Current
	user.LongestStreak = r.Longest
	user.LastCheckIn = r.LastCheckIn

	var pair *model.TokenPair
	err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.manager.Users(tx).UpdateStreak(ctx, user); err != nil {
			return err
		}
		pair, err = s.issue(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error logging in: %w", err)
	}
	return user, pair, nil
}

// RotateRefresh validates a refresh token, atomically consumes it, and
// returns the owning user with a fresh pair. Any failure (bad signature,
// expiry, wrong type, already-consumed token, token/claim mismatch) yields
// common.ErrorUnauthorized; the pair is never partially rotated.
func (s *UserService) RotateRefresh(ctx context.Context, refreshToken string) (*model.User, *model.TokenPair, error) {
	claimedUserID, err := auth.GetUserIDFromToken(refreshToken, auth.TypeRefresh, s.jwtSecret)
	if err != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	unlock := s.locks.Lock(claimedUserID)
	defer unlock()

	var (
		user *model.User
		pair *model.TokenPair
	)
	err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		ownerID, err := s.manager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil || ownerID != claimedUserID {
			return common.ErrorUnauthorized
		}
		user, err = s.manager.Users(tx).GetByID(ctx, ownerID)
		if err != nil {
			return common.ErrorUnauthorized
		}
		pair, err = s.issue(ctx, tx, ownerID)
		return err
	})
	if err != nil {
		return nil, nil, common.ErrorUnauthorized
	}
	return user, pair, nil
}

// Issue mints a token pair for an existing user. Failing on an unknown user
// is a caller bug surfaced as common.ErrorNotFound.
func (s *UserService) Issue(ctx context.Context, userID string) (*model.TokenPair, error) {
	if _, err := s.manager.Users(s.manager.Conn()).GetByID(ctx, userID); err != nil {
		return nil, err
	}
	var pair *model.TokenPair
	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		pair, err = s.issue(ctx, tx, userID)
		return err
	})
	return pair, err
}

// VerifyAccess checks signature, expiry, and the access type claim. It never
// returns internal errors to distinguish failure modes: any problem is
// common.ErrInvalidToken or common.ErrTokenExpired, and callers on optional
// routes treat both as "anonymous".
func (s *UserService) VerifyAccess(token string) (string, error) {
	return auth.GetUserIDFromToken(token, auth.TypeAccess, s.jwtSecret)
}

// GetUser loads a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.manager.Users(s.manager.Conn()).GetByID(ctx, userID)
}

func (s *UserService) issue(ctx context.Context, tx dbx.DBTX, userID string) (*model.TokenPair, error) {
	access, err := auth.GenerateToken(userID, auth.TypeAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := auth.GenerateToken(userID, auth.TypeRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.manager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTokenValidityDuration.Seconds()),
		IssuedAt:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}
