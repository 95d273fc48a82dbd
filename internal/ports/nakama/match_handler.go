package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"otterly/internal/app"
	"otterly/internal/bot"
	"otterly/internal/config"
	"otterly/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// emptyMatchGraceTicks is how long an arcade match survives with nobody in it
// before shutting down.
const emptyMatchGraceTicks = 600

// MatchState holds the authoritative runtime state for one arcade match. A
// match hosts exactly one player and one running game session.
type MatchState struct {
	UserID   string           `json:"user_id"`
	Game     app.Game         `json:"game"`
	Tier     domain.Tier      `json:"tier"`
	Tick     int64            `json:"tick"`
	Presence runtime.Presence `json:"-"`
	Svc      *app.Service     `json:"-"`
	Session  app.Session      `json:"-"`

	emptyTicks int64
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// MatchInit is called when the match is created. Params pick the game and
// difficulty; an unknown game falls back to the clock race with a warning.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	loadDataFiles(logger)

	game := app.Game(paramString(params, "game"))
	if !app.ValidGame(game) {
		if game != "" {
			logger.Warn("MatchInit: Unknown game %q, falling back to %s.", game, app.GameRace)
		}
		game = app.GameRace
	}
	tier := domain.Tier(paramString(params, "tier"))
	if !domain.ValidTier(tier) {
		tier = domain.TierEasy
	}

	svc := app.NewService(nil)
	session, err := svc.NewSession(game, tier)
	if err != nil {
		logger.Error("MatchInit: Failed to build session: %v", err)
		return nil, 0, ""
	}

	state := &MatchState{
		Game:    game,
		Tier:    tier,
		Svc:     svc,
		Session: session,
	}

	label, err := matchLabel(game, tier, true)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := config.GetArcadeConfig().Timing.TickRate
	if tickRate <= 0 {
		tickRate = 10
	}
	return state, tickRate, label
}

// loadDataFiles loads the deployable data alongside the plugin. Every loader
// keeps built-in defaults on failure, so a missing file is only a warning.
func loadDataFiles(logger runtime.Logger) {
	if err := config.LoadArcadeConfig("data/arcade_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load arcade config: %v", err)
	}
	if err := config.LoadWords("data/words.json"); err != nil {
		logger.Warn("MatchInit: Could not load word lists: %v", err)
	}
	if err := bot.LoadIdentities("data/rival_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load rival identities: %v", err)
	}
}

// matchLabel builds the queryable match label.
func matchLabel(game app.Game, tier domain.Tier, open bool) (string, error) {
	openSeats := 0
	if open {
		openSeats = 1
	}
	label, err := structpb.NewStruct(map[string]interface{}{
		"game": string(game),
		"tier": string(tier),
		"open": openSeats,
	})
	if err != nil {
		return "", err
	}
	payload, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func paramString(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// MatchJoinAttempt admits the first player and the same player rejoining;
// everyone else is turned away.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	if matchState.UserID != "" && matchState.UserID != presence.GetUserId() {
		return matchState, false, "Match full"
	}
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.UserID = p.GetUserId()
		matchState.Presence = p
	}
	matchState.emptyTicks = 0

	if label, err := matchLabel(matchState.Game, matchState.Tier, false); err == nil {
		if err := dispatcher.MatchLabelUpdate(label); err != nil {
			logger.Warn("MatchJoin: Failed to update label: %v", err)
		}
	}

	// A joining or rejoining client gets the full picture immediately.
	mh.broadcastEvent(matchState, dispatcher, logger, app.Event{
		Kind:       app.EventSnapshot,
		Payload:    matchState.Session.Snapshot(),
		Recipients: []string{matchState.UserID},
	})
	return matchState
}

func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() == matchState.UserID {
			matchState.Presence = nil
		}
	}
	// Keep the match alive briefly so a dropped connection can resume.
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	if matchState.Presence == nil {
		matchState.emptyTicks++
		if matchState.emptyTicks >= emptyMatchGraceTicks {
			logger.Debug("MatchLoop: Shutting down empty match.")
			return nil
		}
	} else {
		matchState.emptyTicks = 0
	}

	for _, msg := range messages {
		if msg.GetOpCode() != OpCommand {
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
			continue
		}
		mh.handleCommand(matchState, dispatcher, logger, msg)
	}

	for _, ev := range matchState.Session.Step() {
		mh.broadcastEvent(matchState, dispatcher, logger, ev)
	}

	return matchState
}

func (mh *matchHandler) handleCommand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if msg.GetUserId() != state.UserID {
		logger.Warn("MatchLoop: Command from non-player %s ignored.", msg.GetUserId())
		return
	}

	var cmd app.Command
	if err := json.Unmarshal(msg.GetData(), &cmd); err != nil {
		logger.Warn("MatchLoop: Undecodable command: %v", err)
		mh.sendError(state, dispatcher, logger, "invalid command payload")
		return
	}

	// "Play again" on a finished game swaps in a fresh session for the same
	// game and tier.
	if cmd.Action == app.ActionStart && state.Session.Finished() {
		session, err := state.Svc.NewSession(state.Game, state.Tier)
		if err != nil {
			logger.Error("MatchLoop: Failed to rebuild session: %v", err)
			return
		}
		state.Session = session
	}

	events, err := state.Session.Handle(cmd)
	if err != nil {
		// Late answers after a timeout and similar races are routine; tell
		// only the sender.
		logger.Debug("MatchLoop: Command %s rejected: %v", cmd.Action, err)
		mh.sendError(state, dispatcher, logger, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// eventOpCodes maps session event kinds to wire opcodes.
var eventOpCodes = map[app.EventKind]int64{
	app.EventSnapshot:         OpSnapshot,
	app.EventCountdownStep:    OpCountdownStep,
	app.EventRoundStarted:     OpRoundStarted,
	app.EventRoundResolved:    OpRoundResolved,
	app.EventOpponentAdvanced: OpOpponentAdvanced,
	app.EventGameEnded:        OpGameEnded,
}

func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		logger.Error("broadcastEvent: Unmapped event kind %s", ev.Kind)
		return
	}
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("broadcastEvent: Failed to marshal %s payload: %v", ev.Kind, err)
		return
	}

	var targets []runtime.Presence
	if len(ev.Recipients) > 0 && state.Presence != nil {
		for _, userID := range ev.Recipients {
			if userID == state.UserID {
				targets = []runtime.Presence{state.Presence}
				break
			}
		}
		if targets == nil {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, targets, nil, true); err != nil {
		logger.Error("broadcastEvent: Broadcast failed: %v", err)
	}
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, message string) {
	data, _ := json.Marshal(map[string]string{"error": message})
	var targets []runtime.Presence
	if state.Presence != nil {
		targets = []runtime.Presence{state.Presence}
	}
	if err := dispatcher.BroadcastMessage(OpError, data, targets, nil, true); err != nil {
		logger.Error("sendError: Broadcast failed: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
