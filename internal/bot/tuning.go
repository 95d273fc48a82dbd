package bot

// Tuning shapes how a rival paces itself against the player.
type Tuning struct {
	// DriftFactor scales each drift roll against the tier's base speed.
	DriftFactor float64
	// TauntChance is the probability of a taunt when a round resolves in the
	// rival's favour.
	TauntChance float64
}

// DefaultTuning keeps the rival beatable on every tier: the average drift per
// roll is DriftFactor/2 of the tier speed.
var DefaultTuning = Tuning{
	DriftFactor: 0.4,
	TauntChance: 0.35,
}
