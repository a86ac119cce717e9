package user

import (
	"context"

	"github.com/fekuna/omnipos-tyre-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	// FindByUsername returns nil, nil when no user matches.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
