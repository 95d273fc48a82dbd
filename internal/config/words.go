package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"otterly/internal/domain"
)

var (
	words        domain.WordList
	wordLoadOnce sync.Once
	wordLoadErr  error
)

// LoadWords loads the spelling trainer word lists from the given path. A
// missing or broken file leaves the built-in lists active.
func LoadWords(path string) error {
	wordLoadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			wordLoadErr = fmt.Errorf("failed to read word lists: %w", err)
			return
		}

		var w domain.WordList
		if err := json.Unmarshal(data, &w); err != nil {
			wordLoadErr = fmt.Errorf("failed to unmarshal word lists: %w", err)
			return
		}
		words = w
	})
	return wordLoadErr
}

// GetWords returns the active word lists, falling back to the built-in lists
// when no file was loaded.
func GetWords() domain.WordList {
	if words == nil {
		return defaultWords
	}
	return words
}

var defaultWords = domain.WordList{
	domain.TierEasy: {
		{Word: "cat", Hint: "A furry pet that says meow"},
		{Word: "dog", Hint: "A loyal pet that barks"},
		{Word: "sun", Hint: "The bright star in our sky"},
		{Word: "moon", Hint: "It shines at night"},
		{Word: "fish", Hint: "It swims in water"},
		{Word: "bird", Hint: "It can fly in the sky"},
		{Word: "tree", Hint: "It has leaves and branches"},
		{Word: "book", Hint: "You read stories in it"},
		{Word: "star", Hint: "Twinkle twinkle little..."},
		{Word: "rain", Hint: "Water falling from clouds"},
		{Word: "cake", Hint: "A sweet birthday treat"},
		{Word: "ball", Hint: "Round toy you can throw"},
		{Word: "duck", Hint: "A bird that says quack"},
		{Word: "frog", Hint: "A green animal that hops"},
		{Word: "milk", Hint: "A white drink from cows"},
	},
	domain.TierMedium: {
		{Word: "school", Hint: "Where children go to learn"},
		{Word: "friend", Hint: "Someone you like to play with"},
		{Word: "garden", Hint: "Where flowers grow"},
		{Word: "planet", Hint: "Earth is one of these"},
		{Word: "monkey", Hint: "An animal that loves bananas"},
		{Word: "purple", Hint: "A color mixing red and blue"},
		{Word: "bridge", Hint: "You walk over water on this"},
		{Word: "orange", Hint: "A citrus fruit and a color"},
		{Word: "castle", Hint: "Where kings and queens live"},
		{Word: "rocket", Hint: "It flies into space"},
		{Word: "turtle", Hint: "A slow animal with a shell"},
		{Word: "winter", Hint: "The coldest season"},
		{Word: "jungle", Hint: "A thick tropical forest"},
		{Word: "kitten", Hint: "A baby cat"},
		{Word: "rabbit", Hint: "An animal with long ears that hops"},
	},
	domain.TierHard: {
		{Word: "beautiful", Hint: "Very pretty to look at"},
		{Word: "wonderful", Hint: "Something amazing and great"},
		{Word: "adventure", Hint: "An exciting journey or experience"},
		{Word: "knowledge", Hint: "What you gain from learning"},
		{Word: "chocolate", Hint: "A sweet brown treat"},
		{Word: "butterfly", Hint: "A colorful insect with wings"},
		{Word: "dinosaur", Hint: "Ancient reptile, now extinct"},
		{Word: "astronaut", Hint: "A person who travels to space"},
		{Word: "invisible", Hint: "Cannot be seen"},
		{Word: "celebrate", Hint: "To have a party for something special"},
		{Word: "excellent", Hint: "Extremely good, outstanding"},
		{Word: "emergency", Hint: "A sudden serious situation"},
		{Word: "important", Hint: "Something that matters a lot"},
		{Word: "education", Hint: "The process of learning"},
		{Word: "telescope", Hint: "Used to see faraway stars"},
	},
}
