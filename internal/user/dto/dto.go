package dto

import (
	"strings"

	"github.com/fekuna/omnipos-tyre-service/internal/apperr"
	"github.com/fekuna/omnipos-tyre-service/internal/model"
	"github.com/fekuna/omnipos-tyre-service/internal/validation"
)

type LoginInput struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Validate() error {
	in.Username = strings.TrimSpace(in.Username)

	var verr apperr.ValidationError
	validation.Struct(&verr, in)
	return verr.OrNil()
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}
