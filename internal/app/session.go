package app

import "errors"

// Game identifies one of the arcade's playable games.
type Game string

const (
	GameRace       Game = "clock_race"
	GameBattle     Game = "tank_battle"
	GameQuiz       Game = "speed_quiz"
	GameSpelling   Game = "spelling"
	GameMultiply   Game = "multiply_practice"
	GameDivide     Game = "divide_practice"
	GameWritten    Game = "written_math"
	GameCalculator Game = "calculator"
)

// ValidGame reports whether g names a playable game.
func ValidGame(g Game) bool {
	switch g {
	case GameRace, GameBattle, GameQuiz, GameSpelling,
		GameMultiply, GameDivide, GameWritten, GameCalculator:
		return true
	}
	return false
}

// Action identifies a client command inside a session.
type Action string

const (
	ActionStart       Action = "start"
	ActionAnswer      Action = "answer"
	ActionSkip        Action = "skip"
	ActionSetTier     Action = "set_tier"
	ActionSelectTable Action = "select_table"
	ActionAdvance     Action = "advance"
	ActionBack        Action = "back"
	ActionKey         Action = "key"
)

// Command is one decoded client message.
type Command struct {
	Action Action `json:"action"`
	Value  string `json:"value,omitempty"` // typed or selected answer, calculator key
	Tier   string `json:"tier,omitempty"`
	Table  int    `json:"table,omitempty"`
	Steps  []int  `json:"steps,omitempty"` // worked written-math entries, in order
}

var (
	ErrUnknownGame    = errors.New("unknown game")
	ErrUnknownAction  = errors.New("action not supported by this game")
	ErrAlreadyStarted = errors.New("session already started")
)

// Session is one running arcade game. Step runs once per match tick; Handle
// applies one client command. Both return the events to dispatch.
type Session interface {
	Game() Game
	Step() []Event
	Handle(cmd Command) ([]Event, error)
	Snapshot() any
	Finished() bool
}
