package recommend

import (
	"context"
	"testing"

	"github.com/anirecbot/anirec/internal/anilist"
)

type fakeCatalog struct {
	planning []anilist.Media
	trending []anilist.Media
	popular  []anilist.Media
	watched  map[int]struct{}

	planningCalls int
	watchedCalls  int
	lastMinScore  int
	lastUsername  string
}

func (f *fakeCatalog) PlanningList(_ context.Context, username string, minScore int) []anilist.Media {
	f.planningCalls++
	f.lastUsername = username
	f.lastMinScore = minScore
	return f.planning
}

func (f *fakeCatalog) Trending(context.Context) []anilist.Media {
	return f.trending
}

func (f *fakeCatalog) AllTimePopular(context.Context) []anilist.Media {
	return f.popular
}

func (f *fakeCatalog) UserAnimeIDs(_ context.Context, username string) map[int]struct{} {
	f.watchedCalls++
	f.lastUsername = username
	if f.watched == nil {
		return map[int]struct{}{}
	}
	return f.watched
}

func TestRecommendPlanningSkipsWatchHistory(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		planning: mediaList(1, 2, 3),
		watched:  map[int]struct{}{1: {}, 2: {}, 3: {}},
	}
	svc := NewService(nil, catalog, testRNG(1))

	result := svc.Recommend(context.Background(), CategoryPlanning, "alice", 0)
	if !result.OK {
		t.Fatalf("expected a pick, got %+v", result)
	}
	if catalog.watchedCalls != 0 {
		t.Fatal("planning must not fetch the watch-history set")
	}
	if catalog.lastMinScore != 0 {
		t.Fatalf("unexpected minScore: %d", catalog.lastMinScore)
	}
}

func TestRecommendPlanningReachesAllCandidates(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{planning: mediaList(1, 2, 3)}
	seen := map[int]bool{}
	for seed := uint64(0); seed < 100; seed++ {
		svc := NewService(nil, catalog, testRNG(seed))
		result := svc.Recommend(context.Background(), CategoryPlanning, "alice", 0)
		if !result.OK {
			t.Fatal("expected a pick")
		}
		seen[result.Media.ID] = true
	}
	for _, id := range []int{1, 2, 3} {
		if !seen[id] {
			t.Fatalf("id %d unreachable across seeded trials", id)
		}
	}
}

func TestRecommendTrendingExcludesWatched(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		trending: mediaList(1, 2, 3),
		watched:  map[int]struct{}{1: {}, 3: {}},
	}

	for seed := uint64(0); seed < 50; seed++ {
		svc := NewService(nil, catalog, testRNG(seed))
		result := svc.Recommend(context.Background(), CategoryTrending, "alice", 0)
		if !result.OK {
			t.Fatal("expected a pick")
		}
		if result.Media.ID != 2 {
			t.Fatalf("seed %d: picked watched id %d", seed, result.Media.ID)
		}
	}
	if catalog.watchedCalls == 0 {
		t.Fatal("trending must fetch the watch-history set")
	}
}

func TestRecommendTrendingExhausted(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{
		trending: mediaList(1, 2),
		watched:  map[int]struct{}{1: {}, 2: {}},
	}
	svc := NewService(nil, catalog, testRNG(1))

	result := svc.Recommend(context.Background(), CategoryTrending, "alice", 0)
	if result.OK {
		t.Fatalf("expected no pick, got %+v", result)
	}
	if !result.Exhausted {
		t.Fatal("expected Exhausted for an emptied-by-filter category")
	}
}

func TestRecommendNoData(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, &fakeCatalog{}, testRNG(1))

	result := svc.Recommend(context.Background(), CategoryPopular, "alice", 0)
	if result.OK || result.Exhausted {
		t.Fatalf("expected plain no-data result, got %+v", result)
	}
}

func TestRecommendPlanningPassesMinScore(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{planning: mediaList(5)}
	svc := NewService(nil, catalog, testRNG(1))

	svc.Recommend(context.Background(), CategoryPlanning, "alice", 70)
	if catalog.lastMinScore != 70 {
		t.Fatalf("minScore not forwarded, got %d", catalog.lastMinScore)
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"planning", "trending", "popular"} {
		if _, ok := ParseCategory(value); !ok {
			t.Fatalf("expected %q to parse", value)
		}
	}
	if _, ok := ParseCategory("watching"); ok {
		t.Fatal("expected unknown category to be rejected")
	}
}
