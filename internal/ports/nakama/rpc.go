package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"otterly/internal/app"
	"otterly/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickPlayRequest picks the game and difficulty for a fresh arcade match.
type QuickPlayRequest struct {
	Game string `json:"game"`
	Tier string `json:"tier"`
}

// QuickPlayResponse carries the created match id back to the client.
type QuickPlayResponse struct {
	MatchID string `json:"match_id"`
}

// RpcQuickPlayFn creates a fresh single-player arcade match for the caller.
//
// Payload: {"game": "clock_race", "tier": "easy"}
// Returns: {"match_id": "..."}
func RpcQuickPlayFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userId, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req QuickPlayRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			logger.Warn("RpcQuickPlay [User:%s]: Bad payload: %v", userId, err)
			return "", fmt.Errorf("invalid payload")
		}
	}
	if req.Game != "" && !app.ValidGame(app.Game(req.Game)) {
		return "", fmt.Errorf("unknown game: %s", req.Game)
	}
	if req.Tier != "" && !domain.ValidTier(domain.Tier(req.Tier)) {
		return "", fmt.Errorf("unknown tier: %s", req.Tier)
	}

	params := map[string]interface{}{
		"game": req.Game,
		"tier": req.Tier,
	}
	matchId, err := nk.MatchCreate(ctx, MatchNameArcade, params)
	if err != nil {
		logger.Error("RpcQuickPlay [User:%s]: Failed to create match: %v", userId, err)
		return "", err
	}

	logger.Info("RpcQuickPlay [User:%s]: Created match %s for game %q.", userId, matchId, req.Game)
	resp, err := json.Marshal(QuickPlayResponse{MatchID: matchId})
	if err != nil {
		return "", err
	}
	return string(resp), nil
}
