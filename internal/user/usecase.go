package user

import (
	"context"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/user/dto"
)

type UseCase interface {
	Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error)
	// EnsureAdmin creates the bootstrap account when it does not exist yet.
	EnsureAdmin(ctx context.Context, username, password string) (*model.User, error)
}

type TokenIssuer interface {
	GenerateToken(user *model.User) (string, error)
}
