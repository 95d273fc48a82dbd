package app

import "otterly/internal/domain"

// EventKind identifies emitted session events for Nakama dispatch.
type EventKind string

const (
	EventSnapshot         EventKind = "snapshot"
	EventCountdownStep    EventKind = "countdown_step"
	EventRoundStarted     EventKind = "round_started"
	EventRoundResolved    EventKind = "round_resolved"
	EventOpponentAdvanced EventKind = "opponent_advanced"
	EventGameEnded        EventKind = "game_ended"
)

// Event is a session event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// CountdownStepPayload announces one step of the 3-2-1 lead-in; step 0 is the
// final "GO" flash.
type CountdownStepPayload struct {
	Step int `json:"step"`
}

// RoundStartedPayload opens a round. Exactly one of the question fields is set
// depending on the game.
type RoundStartedPayload struct {
	Round     int                 `json:"round,omitempty"`
	Turn      int                 `json:"turn,omitempty"`
	TurnPhase domain.BattlePhase  `json:"turn_phase,omitempty"`
	Timer     float64             `json:"timer,omitempty"`
	Clock     *ClockQuestionView  `json:"clock,omitempty"`
	Math      *MathQuestionView   `json:"math,omitempty"`
	Choice    *ChoiceQuestionView `json:"choice,omitempty"`
	Word      *WordView           `json:"word,omitempty"`
}

// ChoiceQuestionView is the client-facing multiple-choice question, options
// only.
type ChoiceQuestionView struct {
	Prompt  string `json:"prompt"`
	Options []int  `json:"options"`
}

// ClockQuestionView is the client-facing clock question: hand angles and
// options, never the answer.
type ClockQuestionView struct {
	HourAngle   float64  `json:"hour_angle"`
	MinuteAngle float64  `json:"minute_angle"`
	Options     []string `json:"options"`
}

// MathQuestionView is the client-facing free-entry question.
type MathQuestionView struct {
	Prompt string `json:"prompt"`
	Visual string `json:"visual,omitempty"`
}

// WordView is the client-facing spelling round: hint and length, never the
// word itself.
type WordView struct {
	Hint   string `json:"hint"`
	Length int    `json:"length"`
}

// RoundResolvedPayload reports how a round came out along with the state the
// client needs to animate it.
type RoundResolvedPayload struct {
	Outcome  domain.Outcome `json:"outcome"`
	Answer   string         `json:"answer"`
	Score    int            `json:"score"`
	Streak   int            `json:"streak,omitempty"`
	Feedback string         `json:"feedback,omitempty"`
	Player   float64        `json:"player,omitempty"`
	Opponent float64        `json:"opponent,omitempty"`
}

// OpponentAdvancedPayload reports rival car drift between rounds.
type OpponentAdvancedPayload struct {
	Position float64 `json:"position"`
	Taunt    string  `json:"taunt,omitempty"`
}

// GameEndedPayload closes a session.
type GameEndedPayload struct {
	Won        bool   `json:"won"`
	Score      int    `json:"score"`
	BestStreak int    `json:"best_streak,omitempty"`
	Correct    int    `json:"correct,omitempty"`
	Total      int    `json:"total,omitempty"`
	Banner     string `json:"banner,omitempty"`
}
