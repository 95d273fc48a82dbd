package nakama

const (
	// RpcQuickPlay is the Nakama RPC id clients call to spin up an arcade match.
	RpcQuickPlay = "quick_play"

	// RpcTimesTable returns the times table explorer grid.
	RpcTimesTable = "times_table"

	// RpcShareToken signs a score proof; RpcShareVerify checks one.
	RpcShareToken  = "share_token"
	RpcShareVerify = "share_verify"

	// Registry projection RPCs.
	RpcToolsGrid     = "tools_grid"
	RpcToolsPreview  = "tools_preview"
	RpcToolsItemList = "tools_item_list"
	RpcBlogGrid      = "blog_grid"
	RpcBlogPreview   = "blog_preview"
	RpcPostNav       = "post_nav"
	RpcRelatedPosts  = "related_posts"

	// MatchNameArcade is the authoritative match handler name registered with Nakama.
	MatchNameArcade = "arcade_session"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpCommand int64 = 1

	// Server -> Client events
	OpSnapshot         int64 = 101
	OpCountdownStep    int64 = 102
	OpRoundStarted     int64 = 103
	OpRoundResolved    int64 = 104
	OpOpponentAdvanced int64 = 105
	OpGameEnded        int64 = 106
	OpError            int64 = 110
)
