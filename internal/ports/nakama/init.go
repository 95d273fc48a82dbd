package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameArcade, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(), nil
	}); err != nil {
		return err
	}

	logger.Info("Otterly arcade module loaded.")
	return nil
}

// RegisterRPCs registers every RPC the module exposes.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcQuickPlay:     RpcQuickPlayFn,
		RpcTimesTable:    RpcTimesTableFn,
		RpcShareToken:    RpcShareTokenFn,
		RpcShareVerify:   RpcShareVerifyFn,
		RpcToolsGrid:     RpcToolsGridFn,
		RpcToolsPreview:  RpcToolsPreviewFn,
		RpcToolsItemList: RpcToolsItemListFn,
		RpcBlogGrid:      RpcBlogGridFn,
		RpcBlogPreview:   RpcBlogPreviewFn,
		RpcPostNav:       RpcPostNavFn,
		RpcRelatedPosts:  RpcRelatedPostsFn,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}
