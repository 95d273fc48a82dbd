package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"otterly/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	shareTokens     *app.ShareTokenService
	shareTokensOnce sync.Once
)

// shareTokenService builds the signer from the runtime environment. The
// secret comes from SHARE_TOKEN_SECRET; without it every call fails cleanly.
func shareTokenService(ctx context.Context) *app.ShareTokenService {
	shareTokensOnce.Do(func() {
		env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
		issuer := env["SHARE_TOKEN_ISSUER"]
		if issuer == "" {
			issuer = "otterlygames.com"
		}
		ttl := 24 * time.Hour
		if raw := env["SHARE_TOKEN_TTL"]; raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil {
				ttl = parsed
			}
		}
		shareTokens = app.NewShareTokenService(env["SHARE_TOKEN_SECRET"], issuer, ttl)
	})
	return shareTokens
}

// ShareTokenRequest asks for a signed proof of a finished game's score.
type ShareTokenRequest struct {
	Game  string `json:"game"`
	Score int    `json:"score"`
}

// ShareTokenResponse carries the signed proof.
type ShareTokenResponse struct {
	Token string `json:"token"`
}

// ShareVerifyRequest carries a token to check.
type ShareVerifyRequest struct {
	Token string `json:"token"`
}

// ShareVerifyResponse echoes the proven claims.
type ShareVerifyResponse struct {
	UserID string `json:"user_id"`
	Game   string `json:"game"`
	Score  int    `json:"score"`
}

// RpcShareTokenFn signs a score proof for the calling user.
//
// Payload: {"game": "tank_battle", "score": 120}
// Returns: {"token": "..."}
func RpcShareTokenFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userId == "" {
		return "", fmt.Errorf("authentication required")
	}

	var req ShareTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", fmt.Errorf("invalid payload")
	}

	token, err := shareTokenService(ctx).GenerateToken(userId, app.Game(req.Game), req.Score)
	if err != nil {
		logger.Warn("RpcShareToken [User:%s]: %v", userId, err)
		return "", err
	}

	resp, err := json.Marshal(ShareTokenResponse{Token: token})
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

// RpcShareVerifyFn checks a share token and returns its claims.
//
// Payload: {"token": "..."}
func RpcShareVerifyFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req ShareVerifyRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", fmt.Errorf("invalid payload")
	}
	if req.Token == "" {
		return "", fmt.Errorf("token is required")
	}

	claims, err := shareTokenService(ctx).VerifyToken(req.Token)
	if err != nil {
		return "", err
	}

	resp, err := json.Marshal(ShareVerifyResponse{
		UserID: claims.UserID,
		Game:   string(claims.Game),
		Score:  claims.Score,
	})
	if err != nil {
		return "", err
	}
	return string(resp), nil
}
