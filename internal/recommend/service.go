// Package recommend selects one anime for a user from an AniList category.
package recommend

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/anirecbot/anirec/internal/anilist"
)

// Category names the source list a recommendation is drawn from.
type Category string

const (
	CategoryPlanning Category = "planning"
	CategoryTrending Category = "trending"
	CategoryPopular  Category = "popular"
)

// ParseCategory maps a command option value to a Category.
func ParseCategory(value string) (Category, bool) {
	switch Category(value) {
	case CategoryPlanning, CategoryTrending, CategoryPopular:
		return Category(value), true
	}
	return "", false
}

// Catalog is the slice of the AniList client the service consumes.
type Catalog interface {
	PlanningList(ctx context.Context, username string, minScore int) []anilist.Media
	Trending(ctx context.Context) []anilist.Media
	AllTimePopular(ctx context.Context) []anilist.Media
	UserAnimeIDs(ctx context.Context, username string) map[int]struct{}
}

// Result is the outcome of one recommendation request.
// OK means Media holds a choice. Exhausted means the category had
// candidates but every one was already on the user's list.
type Result struct {
	Media     anilist.Media
	OK        bool
	Exhausted bool
}

// Service runs the filter-and-choose pipeline. Safe for concurrent use; the
// random source is guarded because slash-command handlers run in parallel.
type Service struct {
	catalog Catalog
	logger  *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService builds a recommendation service. A nil rng gets a time-seeded
// source; tests pass a fixed seed.
func NewService(log *slog.Logger, catalog Catalog, rng *rand.Rand) *Service {
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>17))
	}
	return &Service{
		catalog: catalog,
		logger:  log.With(slog.String("service", "recommend")),
		rng:     rng,
	}
}

// Recommend fetches the candidates for category and picks one at random.
// Trending and popular are shuffled and filtered against username's full
// watch history; planning is not yet watched by construction, so neither
// applies. minScore only affects the planning fetch.
func (s *Service) Recommend(ctx context.Context, category Category, username string, minScore int) Result {
	var candidates []anilist.Media
	switch category {
	case CategoryPlanning:
		candidates = s.catalog.PlanningList(ctx, username, minScore)
	case CategoryTrending:
		candidates = s.catalog.Trending(ctx)
	case CategoryPopular:
		candidates = s.catalog.AllTimePopular(ctx)
	}

	if len(candidates) == 0 {
		s.logger.Info("no candidates", slog.String("category", string(category)), slog.String("username", username))
		return Result{}
	}

	exclude := map[int]struct{}{}
	if category != CategoryPlanning {
		exclude = s.catalog.UserAnimeIDs(ctx, username)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if category != CategoryPlanning {
		Shuffle(s.rng, candidates)
	}

	media, ok := Pick(s.rng, candidates, exclude)
	if !ok {
		s.logger.Info("all candidates excluded", slog.String("category", string(category)), slog.String("username", username))
		return Result{Exhausted: true}
	}
	return Result{Media: media, OK: true}
}
