package recommend

import (
	"math/rand/v2"

	"github.com/anirecbot/anirec/internal/anilist"
)

// Shuffle permutes candidates in place. Rankings arrive in a deterministic
// order from AniList; without this the top-ranked entry would win every time.
func Shuffle(rng *rand.Rand, candidates []anilist.Media) {
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
}

// Pick chooses one candidate uniformly at random among those whose id is not
// in exclude. The second return value is false when no candidate survives.
func Pick(rng *rand.Rand, candidates []anilist.Media, exclude map[int]struct{}) (anilist.Media, bool) {
	remaining := make([]anilist.Media, 0, len(candidates))
	for _, media := range candidates {
		if _, watched := exclude[media.ID]; watched {
			continue
		}
		remaining = append(remaining, media)
	}
	if len(remaining) == 0 {
		return anilist.Media{}, false
	}
	return remaining[rng.IntN(len(remaining))], true
}
