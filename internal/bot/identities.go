package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// RivalIdentity is one persona for the car or tank the player races against.
type RivalIdentity struct {
	Name        string   `json:"name"`
	AvatarIndex int      `json:"avatar_index"`
	Taunts      []string `json:"taunts"`
}

var (
	rivalIdentities []RivalIdentity
	loadOnce        sync.Once
	loadErr         error
)

// LoadIdentities loads the rival personas from the given path. A missing or
// broken file leaves the built-in personas active.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read rival identities: %w", err)
			return
		}

		var identities []RivalIdentity
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal rival identities: %w", err)
			return
		}
		rivalIdentities = identities
	})
	return loadErr
}

// GetRivalIdentity returns a persona by index (mod pool size).
func GetRivalIdentity(index int) RivalIdentity {
	pool := rivalIdentities
	if len(pool) == 0 {
		pool = defaultIdentities
	}
	if index < 0 {
		index = -index
	}
	return pool[index%len(pool)]
}

// PoolSize returns how many personas are available.
func PoolSize() int {
	if len(rivalIdentities) == 0 {
		return len(defaultIdentities)
	}
	return len(rivalIdentities)
}

var defaultIdentities = []RivalIdentity{
	{Name: "Zoomy", AvatarIndex: 0, Taunts: []string{"Catch me if you can!", "Vroom vroom!"}},
	{Name: "Tick-Tock Tina", AvatarIndex: 1, Taunts: []string{"Time's on my side!", "Too slow!"}},
	{Name: "Captain Clank", AvatarIndex: 2, Taunts: []string{"Full speed ahead!", "Beep beep!"}},
	{Name: "Gearhead Gus", AvatarIndex: 3, Taunts: []string{"Eat my dust!", "Pedal to the metal!"}},
}
