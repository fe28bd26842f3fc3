// Package session holds the study-session planner and the state machine
// that drives an in-flight session.
package session

import (
	"math"
	"math/rand"

	"github.com/avelar/wordflash/internal/models"
)

// Plan builds the fixed card order for a new session. New cards lead the
// sequence; reviewable cards are shuffled within their difficulty bucket
// and interleaved easy, medium, hard so no tier streaks. The random
// source is injected so planning is reproducible under a fixed seed.
//
// An empty candidate pool yields an empty plan; the caller decides whether
// that means "no session".
func Plan(candidates []models.SessionCard, roundSize, newReviewRatio, totalRoundsHint int, rng *rand.Rand) []models.SessionCard {
	if len(candidates) == 0 || roundSize < 1 || totalRoundsHint < 1 {
		return nil
	}

	var newCards []models.SessionCard
	buckets := map[models.Difficulty][]models.SessionCard{}
	for _, c := range candidates {
		if c.Difficulty == models.DifficultyNew {
			newCards = append(newCards, c)
			continue
		}
		buckets[c.Difficulty] = append(buckets[c.Difficulty], c)
	}

	shuffle(newCards, rng)
	for _, tier := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		shuffle(buckets[tier], rng)
	}

	reviewable := interleave(buckets[models.DifficultyEasy], buckets[models.DifficultyMedium], buckets[models.DifficultyHard])

	totalNeeded := roundSize * totalRoundsHint
	if n := len(newCards) + len(reviewable); n < totalNeeded {
		totalNeeded = n
	}
	newNeeded := int(math.Round(float64(newReviewRatio) / 100 * float64(totalNeeded)))
	reviewNeeded := totalNeeded - newNeeded
	if newNeeded > len(newCards) {
		newNeeded = len(newCards)
	}
	if reviewNeeded > len(reviewable) {
		reviewNeeded = len(reviewable)
	}

	plan := make([]models.SessionCard, 0, newNeeded+reviewNeeded)
	plan = append(plan, newCards[:newNeeded]...)
	plan = append(plan, reviewable[:reviewNeeded]...)
	return plan
}

// interleave takes one card per tier per pass, in easy, medium, hard
// order, until all tiers are drained.
func interleave(tiers ...[]models.SessionCard) []models.SessionCard {
	total := 0
	longest := 0
	for _, t := range tiers {
		total += len(t)
		if len(t) > longest {
			longest = len(t)
		}
	}
	out := make([]models.SessionCard, 0, total)
	for i := 0; i < longest; i++ {
		for _, t := range tiers {
			if i < len(t) {
				out = append(out, t[i])
			}
		}
	}
	return out
}

func shuffle(cards []models.SessionCard, rng *rand.Rand) {
	if rng == nil {
		return
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
