package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/user"
	"github.com/fekuna/omnipos-tyre-service/internal/user/dto"
	"github.com/fekuna/omnipos-tyre-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userUseCase struct {
	repo   user.Repository
	tokens user.TokenIssuer
	logger logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, tokens user.TokenIssuer, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := uc.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.logger.Error("stored password hash is unusable", zap.String("user_id", u.ID), zap.Error(err))
		}
		return nil, apperr.ErrUnauthorized
	}

	token, err := uc.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user logged in", zap.String("user_id", u.ID))
	return &dto.LoginResult{Token: token, User: u}, nil
}

func (uc *userUseCase) EnsureAdmin(ctx context.Context, username, password string) (*model.User, error) {
	existing, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Info("admin user created", zap.String("username", username))
	return u, nil
}
