package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"otterly/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// TimesTableRequest optionally highlights one table in the explorer grid.
type TimesTableRequest struct {
	Highlight int `json:"highlight"`
}

// TimesTableResponse carries the 12x12 product grid.
type TimesTableResponse struct {
	Size int                       `json:"size"`
	Grid [][]domain.TimesTableCell `json:"grid"`
}

// RpcTimesTableFn returns the times table explorer grid.
//
// Payload: (Optional) {"highlight": 7}
func RpcTimesTableFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req TimesTableRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", fmt.Errorf("invalid payload")
		}
	}

	resp := TimesTableResponse{
		Size: domain.TimesTableSize,
		Grid: domain.TimesTable(req.Highlight),
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
