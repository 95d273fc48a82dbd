package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"otterly/internal/app"
	"otterly/internal/config"
	"otterly/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	opCodes      []int64
	labelUpdates int
	lastOpCode   int64
	lastData     []byte
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.opCodes = append(md.opCodes, opCode)
	md.lastOpCode = opCode
	md.lastData = append([]byte(nil), data...)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

func (md *mockDispatcher) sawOpCode(opCode int64) bool {
	for _, code := range md.opCodes {
		if code == opCode {
			return true
		}
	}
	return false
}

// mockPresence implements runtime.Presence for a test user.
type mockPresence struct {
	userID string
}

func (mp mockPresence) GetUserId() string    { return mp.userID }
func (mp mockPresence) GetSessionId() string { return "session-" + mp.userID }
func (mp mockPresence) GetNodeId() string    { return "node-1" }
func (mp mockPresence) GetHidden() bool      { return false }
func (mp mockPresence) GetPersistence() bool { return false }
func (mp mockPresence) GetUsername() string  { return mp.userID }
func (mp mockPresence) GetStatus() string    { return "" }
func (mp mockPresence) GetReason() runtime.PresenceReason {
	return runtime.PresenceReasonUnknown
}

// mockMatchData wraps a presence with a client message.
type mockMatchData struct {
	mockPresence
	opCode int64
	data   []byte
}

func (md mockMatchData) GetOpCode() int64      { return md.opCode }
func (md mockMatchData) GetData() []byte       { return md.data }
func (md mockMatchData) GetReliable() bool     { return true }
func (md mockMatchData) GetReceiveTime() int64 { return 0 }

func commandMessage(t *testing.T, userID string, cmd app.Command) mockMatchData {
	t.Helper()
	data, err := json.Marshal(cmd)
	if err != nil {
		t.Fatalf("Failed to marshal command: %v", err)
	}
	return mockMatchData{mockPresence: mockPresence{userID: userID}, opCode: OpCommand, data: data}
}

// initMatch runs MatchInit and joins the given user.
func initMatch(t *testing.T, params map[string]interface{}, userID string) (*matchHandler, *MatchState, *mockDispatcher) {
	t.Helper()
	handler := newMatchHandler()
	dispatcher := &mockDispatcher{}

	state, tickRate, label := handler.MatchInit(context.Background(), noopLogger{}, nil, nil, params)
	if state == nil {
		t.Fatal("MatchInit returned nil state")
	}
	if tickRate <= 0 {
		t.Fatalf("tick rate = %d, want positive", tickRate)
	}
	if label == "" {
		t.Fatal("MatchInit returned an empty label")
	}

	matchState := state.(*MatchState)
	presence := mockPresence{userID: userID}

	joined, allow, _ := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, matchState, presence, nil)
	if !allow {
		t.Fatal("First player was rejected")
	}
	state = handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, joined, []runtime.Presence{presence})
	return handler, state.(*MatchState), dispatcher
}

func TestMatchInitUnknownGameFallsBack(t *testing.T) {
	_, state, _ := initMatch(t, map[string]interface{}{"game": "chess", "tier": "nightmare"}, "user-1")

	if state.Game != app.GameRace {
		t.Errorf("game = %s, want %s", state.Game, app.GameRace)
	}
	if state.Tier != domain.TierEasy {
		t.Errorf("tier = %s, want %s", state.Tier, domain.TierEasy)
	}
}

func TestMatchInitHonorsParams(t *testing.T) {
	_, state, _ := initMatch(t, map[string]interface{}{"game": "tank_battle", "tier": "hard"}, "user-1")

	if state.Game != app.GameBattle {
		t.Errorf("game = %s, want %s", state.Game, app.GameBattle)
	}
	if state.Tier != domain.TierHard {
		t.Errorf("tier = %s, want %s", state.Tier, domain.TierHard)
	}
}

func TestMatchLabelShape(t *testing.T) {
	label, err := matchLabel(app.GameQuiz, domain.TierMedium, true)
	if err != nil {
		t.Fatalf("matchLabel: %v", err)
	}

	var decoded struct {
		Game string  `json:"game"`
		Tier string  `json:"tier"`
		Open float64 `json:"open"`
	}
	if err := json.Unmarshal([]byte(label), &decoded); err != nil {
		t.Fatalf("Failed to decode label %q: %v", label, err)
	}
	if decoded.Game != string(app.GameQuiz) || decoded.Tier != string(domain.TierMedium) || decoded.Open != 1 {
		t.Errorf("label = %+v", decoded)
	}
}

func TestMatchJoinAttemptRejectsSecondPlayer(t *testing.T) {
	handler, state, dispatcher := initMatch(t, nil, "user-1")

	_, allow, reason := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, mockPresence{userID: "user-2"}, nil)
	if allow {
		t.Error("Second player was admitted to a single-player match")
	}
	if reason == "" {
		t.Error("Rejection carried no reason")
	}

	_, allow, _ = handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, mockPresence{userID: "user-1"}, nil)
	if !allow {
		t.Error("Rejoining player was rejected")
	}
}

func TestMatchJoinBroadcastsSnapshot(t *testing.T) {
	_, _, dispatcher := initMatch(t, nil, "user-1")

	if !dispatcher.sawOpCode(OpSnapshot) {
		t.Errorf("opcodes = %v, want a snapshot", dispatcher.opCodes)
	}
	if dispatcher.labelUpdates == 0 {
		t.Error("Join did not update the match label")
	}
}

func TestMatchLoopStartRunsCountdownIntoFirstRound(t *testing.T) {
	handler, state, dispatcher := initMatch(t, map[string]interface{}{"game": "clock_race"}, "user-1")

	msg := commandMessage(t, "user-1", app.Command{Action: app.ActionStart})
	next := handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.MatchData{msg})
	if next == nil {
		t.Fatal("Match terminated on start")
	}
	if !dispatcher.sawOpCode(OpCountdownStep) {
		t.Fatalf("opcodes = %v, want a countdown step", dispatcher.opCodes)
	}

	timing := config.GetArcadeConfig().Timing
	budget := timing.CountdownStepTicks*3 + timing.GoFlashTicks + 5
	for tick := int64(2); tick < int64(budget)+2; tick++ {
		next = handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, tick, next, nil)
		if next == nil {
			t.Fatal("Match terminated mid-countdown")
		}
		if dispatcher.sawOpCode(OpRoundStarted) {
			return
		}
	}
	t.Fatalf("No round started within %d ticks; opcodes = %v", budget, dispatcher.opCodes)
}

func TestMatchLoopBadPayloadSendsError(t *testing.T) {
	handler, state, dispatcher := initMatch(t, nil, "user-1")

	msg := mockMatchData{mockPresence: mockPresence{userID: "user-1"}, opCode: OpCommand, data: []byte("not json")}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.MatchData{msg})

	if dispatcher.lastOpCode != OpError {
		t.Errorf("last opcode = %d, want %d", dispatcher.lastOpCode, OpError)
	}
}

func TestMatchLoopIgnoresStrangers(t *testing.T) {
	handler, state, dispatcher := initMatch(t, nil, "user-1")
	before := len(dispatcher.opCodes)

	msg := commandMessage(t, "user-2", app.Command{Action: app.ActionStart})
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.MatchData{msg})

	if len(dispatcher.opCodes) != before {
		t.Errorf("Command from a non-player triggered broadcasts: %v", dispatcher.opCodes[before:])
	}
}

func TestMatchLoopShutsDownWhenEmpty(t *testing.T) {
	handler, state, dispatcher := initMatch(t, nil, "user-1")
	state = handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{mockPresence{userID: "user-1"}}).(*MatchState)

	var next interface{} = state
	for tick := int64(2); tick < emptyMatchGraceTicks+10; tick++ {
		next = handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, tick, next, nil)
		if next == nil {
			return
		}
	}
	t.Fatal("Empty match never shut down")
}
