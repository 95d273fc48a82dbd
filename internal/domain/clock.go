package domain

import (
	"fmt"
	"math/rand"
)

// ClockTime is a 12-hour analog clock position.
type ClockTime struct {
	Hours   int // 1..12
	Minutes int // 0..59
}

// Answer formats the time the way answer buttons display it, e.g. "3:00".
func (t ClockTime) Answer() string {
	return fmt.Sprintf("%d:%02d", t.Hours, t.Minutes)
}

// HourAngle returns the hour hand angle in degrees, 12 o'clock at 0.
func (t ClockTime) HourAngle() float64 {
	return float64(t.Hours%12)*30 + float64(t.Minutes)*0.5
}

// MinuteAngle returns the minute hand angle in degrees.
func (t ClockTime) MinuteAngle() float64 {
	return float64(t.Minutes) * 6
}

// RecentTimes is a bounded queue of recently asked times used to steer the
// generator away from immediate repeats.
type RecentTimes struct {
	keys []string
}

// RecentTimesLimit caps how many recently asked times stay ineligible.
const RecentTimesLimit = 8

// minFreshPool is the smallest filtered candidate pool worth using; below it
// the generator falls back to the full pool rather than starving.
const minFreshPool = 4

// Remember records a time, evicting the oldest entry past the limit.
func (r *RecentTimes) Remember(t ClockTime) {
	r.keys = append(r.keys, t.Answer())
	if len(r.keys) > RecentTimesLimit {
		r.keys = r.keys[1:]
	}
}

// Contains reports whether t was recently asked.
func (r *RecentTimes) Contains(t ClockTime) bool {
	key := t.Answer()
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Len returns the number of remembered times.
func (r *RecentTimes) Len() int {
	return len(r.keys)
}

// ClockQuestion is a single "what time is it" round.
type ClockQuestion struct {
	Time    ClockTime
	Correct string
	Options []string // 4 unique answers including Correct, shuffled
}

// clockPool enumerates every askable time for a tier.
func clockPool(tier Tier) []ClockTime {
	var pool []ClockTime
	switch tier {
	case TierEasy:
		for h := 1; h <= 12; h++ {
			pool = append(pool, ClockTime{Hours: h})
		}
	case TierMedium:
		for h := 1; h <= 12; h++ {
			for _, m := range []int{0, 15, 30, 45} {
				pool = append(pool, ClockTime{Hours: h, Minutes: m})
			}
		}
	default:
		for h := 1; h <= 12; h++ {
			for m := 0; m < 60; m += 5 {
				pool = append(pool, ClockTime{Hours: h, Minutes: m})
			}
		}
	}
	return pool
}

// GenerateClockQuestion draws a time for the tier, avoiding recently asked
// times while the filtered pool stays large enough, and builds four unique
// shuffled answer options including the correct one.
func GenerateClockQuestion(rng *rand.Rand, tier Tier, recent *RecentTimes) ClockQuestion {
	pool := clockPool(tier)

	fresh := pool[:0:0]
	for _, t := range pool {
		if !recent.Contains(t) {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) < minFreshPool {
		fresh = pool
	}

	chosen := fresh[rng.Intn(len(fresh))]
	recent.Remember(chosen)

	correct := chosen.Answer()
	options := []string{correct}
	seen := map[string]bool{correct: true}
	add := func(t ClockTime) {
		if len(options) >= 4 {
			return
		}
		if key := t.Answer(); !seen[key] {
			seen[key] = true
			options = append(options, key)
		}
	}

	switch tier {
	case TierEasy:
		for _, d := range []int{-2, -1, 1, 2} {
			add(ClockTime{Hours: wrapHour(chosen.Hours + d)})
		}
	case TierMedium:
		for _, m := range []int{0, 15, 30, 45} {
			add(ClockTime{Hours: chosen.Hours, Minutes: m})
		}
		if len(options) < 4 {
			add(ClockTime{Hours: wrapHour(chosen.Hours + 1), Minutes: chosen.Minutes})
		}
	default:
		offsets := []int{-15, -10, -5, 5, 10, 15}
		rng.Shuffle(len(offsets), func(i, j int) { offsets[i], offsets[j] = offsets[j], offsets[i] })
		for _, off := range offsets {
			if len(options) >= 4 {
				break
			}
			add(shiftTime(chosen, off))
		}
	}

	// Tier-specific construction can under-supply; fill uniformly.
	for len(options) < 4 {
		add(randomTime(rng, tier))
	}

	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return ClockQuestion{Time: chosen, Correct: correct, Options: options}
}

// wrapHour folds an hour value into 1..12.
func wrapHour(h int) int {
	for h <= 0 {
		h += 12
	}
	for h > 12 {
		h -= 12
	}
	return h
}

// shiftTime moves t by the given minute offset, rolling the hour as needed.
func shiftTime(t ClockTime, minutes int) ClockTime {
	m := t.Minutes + minutes
	h := t.Hours
	if m < 0 {
		m += 60
		h = wrapHour(h - 1)
	}
	if m >= 60 {
		m -= 60
		h = wrapHour(h + 1)
	}
	return ClockTime{Hours: h, Minutes: m}
}

// randomTime draws a uniform time at the tier's minute granularity.
func randomTime(rng *rand.Rand, tier Tier) ClockTime {
	h := rng.Intn(12) + 1
	switch tier {
	case TierEasy:
		return ClockTime{Hours: h}
	case TierMedium:
		return ClockTime{Hours: h, Minutes: []int{0, 15, 30, 45}[rng.Intn(4)]}
	default:
		return ClockTime{Hours: h, Minutes: rng.Intn(12) * 5}
	}
}
