package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
	"github.com/o1iviachen/my-protein-buddy/internal/infrastructure/cache"
)

// maxResolveParallel bounds concurrent detail resolutions for one search.
// Result sets are at most ~20 refs, so this effectively resolves a full set
// at once without letting a pathological response fan out unbounded.
const maxResolveParallel = 20

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL time.Duration
}

// SearchService resolves user-facing search and barcode queries into
// canonical foods through the configured nutrition provider.
type SearchService struct {
	provider domain.NutritionClient
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(provider domain.NutritionClient, foodCache domain.CacheRepository, config SearchServiceConfig) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &SearchService{
		provider: provider,
		cache:    foodCache,
		cacheTTL: cacheTTL,
	}
}

// SearchFoods searches the provider and resolves every result ref to a
// canonical Food. Refs are resolved with bounded parallelism and recombined
// in the original relevance order regardless of completion order; refs that
// fail to resolve are skipped. An empty result is the only failure signal.
func (s *SearchService) SearchFoods(ctx context.Context, query string) ([]domain.Food, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	refs, err := s.provider.Search(ctx, query)
	if err != nil {
		log.Printf("[Search] provider search failed for %q: %v", query, err)
		return []domain.Food{}, nil
	}

	// Index-tagged join: each goroutine writes its own slot, then slots are
	// walked in submission order so relevance ordering survives out-of-order
	// completion.
	resolved := make([]*domain.Food, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxResolveParallel)
	for i, ref := range refs {
		g.Go(func() error {
			food, err := s.resolveCached(gctx, ref)
			if err != nil {
				return nil // failed refs are dropped, not fatal
			}
			resolved[i] = food
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return []domain.Food{}, nil
	}

	foods := make([]domain.Food, 0, len(refs))
	for _, food := range resolved {
		if food != nil {
			foods = append(foods, *food)
		}
	}
	return foods, nil
}

// ResolveBarcode looks up a food by barcode, consulting the cache first.
// Every failure collapses to ErrFoodNotFound.
func (s *SearchService) ResolveBarcode(ctx context.Context, barcode string) (*domain.Food, error) {
	if barcode == "" {
		return nil, domain.ErrFoodNotFound
	}

	key := cache.BarcodeKey(barcode)
	if food, err := s.cache.Get(ctx, key); err == nil {
		return food, nil
	}

	food, err := s.provider.ResolveBarcode(ctx, barcode)
	if err != nil {
		if !errors.Is(err, domain.ErrFoodNotFound) {
			log.Printf("[Search] barcode lookup failed for %q: %v", barcode, err)
		}
		return nil, domain.ErrFoodNotFound
	}

	if err := s.cache.Set(ctx, key, food, s.cacheTTL); err != nil {
		log.Printf("[Search] cache set failed: %v", err)
	}
	return food, nil
}

// resolveCached resolves one ref through the cache.
func (s *SearchService) resolveCached(ctx context.Context, ref domain.FoodRef) (*domain.Food, error) {
	key := cache.FoodKey(ref)
	if food, err := s.cache.Get(ctx, key); err == nil {
		return food, nil
	}

	food, err := s.provider.Resolve(ctx, ref)
	if err != nil {
		return nil, domain.ErrFoodNotFound
	}

	if err := s.cache.Set(ctx, key, food, s.cacheTTL); err != nil {
		log.Printf("[Search] cache set failed: %v", err)
	}
	return food, nil
}
