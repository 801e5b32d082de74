package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/markorv.net/isaharness/internal/config"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

// PermissionReadRuns lets a token read runs, outcomes and progress
const PermissionReadRuns = "harness.runs.read"

var _ IAuthService = &localAuthService{}

// localAuthService checks the single API account from the environment
type localAuthService struct {
	account     *config.AuthConfig
	jwtProvider primary.JWTService
	logger      primary.Logger
}

func NewLocalAuthService(
	account *config.AuthConfig,
	jwtProvider primary.JWTService,
	logger primary.Logger,
) IAuthService {
	return &localAuthService{
		account:     account,
		jwtProvider: jwtProvider,
		logger:      logger,
	}
}

func (g localAuthService) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	if req.Username == "" {
		return "", errs.UsernameMissing
	}
	if g.account.PasswordHash == "" {
		return "", errs.InvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(g.account.User)) != 1 {
		return "", errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, g.account.PasswordHash, req.Password)
	if err != nil || !valid {
		return "", errs.InvalidCredentials
	}

	authPayload := domain.AuthPayload{
		Username:   req.Username,
		Permission: []string{PermissionReadRuns},
	}
	data, err := json.Marshal(authPayload)
	if err != nil {
		return "", errs.InternalError
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		g.logger.Error("Failed to unmarshal auth payload", "error", err)
		return "", errs.InternalError
	}
	token, err := g.jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, payload)
	if err != nil {
		g.logger.Error("Failed to generate token", "error", err)
		return "", errs.GeneratingToken
	}
	return token, nil
}
