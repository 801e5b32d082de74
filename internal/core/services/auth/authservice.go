package auth

import (
	"context"

	"gitlab.com/markorv.net/isaharness/internal/domain"
)

type IAuthService interface {
	Login(ctx context.Context, req domain.LoginRequest) (string, error)
}
