package recommend

import (
	"math/rand/v2"
	"testing"

	"github.com/anirecbot/anirec/internal/anilist"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func mediaList(ids ...int) []anilist.Media {
	result := make([]anilist.Media, 0, len(ids))
	for _, id := range ids {
		result = append(result, anilist.Media{ID: id})
	}
	return result
}

func TestPickNeverReturnsExcluded(t *testing.T) {
	t.Parallel()

	candidates := mediaList(1, 2, 3, 4, 5)
	exclude := map[int]struct{}{2: {}, 4: {}}

	for seed := uint64(0); seed < 200; seed++ {
		media, ok := Pick(testRNG(seed), candidates, exclude)
		if !ok {
			t.Fatal("expected a pick from non-empty remainder")
		}
		if _, bad := exclude[media.ID]; bad {
			t.Fatalf("seed %d: picked excluded id %d", seed, media.ID)
		}
	}
}

func TestPickEmptyAfterExclusion(t *testing.T) {
	t.Parallel()

	candidates := mediaList(1, 2)
	exclude := map[int]struct{}{1: {}, 2: {}}

	if _, ok := Pick(testRNG(1), candidates, exclude); ok {
		t.Fatal("expected no pick when every candidate is excluded")
	}
}

func TestPickEmptyCandidates(t *testing.T) {
	t.Parallel()

	if _, ok := Pick(testRNG(1), nil, nil); ok {
		t.Fatal("expected no pick from empty candidates")
	}
}

func TestPickReachesEveryCandidate(t *testing.T) {
	t.Parallel()

	candidates := mediaList(1, 2, 3)
	seen := map[int]bool{}
	for seed := uint64(0); seed < 100; seed++ {
		media, ok := Pick(testRNG(seed), candidates, nil)
		if !ok {
			t.Fatal("expected a pick")
		}
		seen[media.ID] = true
	}
	for _, id := range []int{1, 2, 3} {
		if !seen[id] {
			t.Fatalf("id %d never picked across seeded trials", id)
		}
	}
}

func TestShufflePreservesElements(t *testing.T) {
	t.Parallel()

	candidates := mediaList(1, 2, 3, 4, 5)
	Shuffle(testRNG(7), candidates)

	seen := map[int]bool{}
	for _, media := range candidates {
		seen[media.ID] = true
	}
	if len(seen) != 5 {
		t.Fatalf("shuffle lost elements: %v", seen)
	}
}
