package domain

import (
	"context"
	"time"
)

// NutritionClient is implemented by each nutrition provider (FatSecret,
// Nutritionix). One provider is selected per deployment.
type NutritionClient interface {
	// Search returns lightweight result refs in provider relevance order.
	Search(ctx context.Context, query string) ([]FoodRef, error)

	// Resolve fetches and parses the full nutrient record for one ref.
	// Returns ErrFoodNotFound for any malformed or unusable response.
	Resolve(ctx context.Context, ref FoodRef) (*Food, error)

	// ResolveBarcode looks up a food by UPC/EAN code; same failure contract
	// as Resolve.
	ResolveBarcode(ctx context.Context, barcode string) (*Food, error)
}

// LedgerRepository persists the per-user, per-date food log and the daily
// protein-intake scalar in the backing document store.
//
// LogFood and RemoveFood take the caller-read current intake and write the
// adjusted total alongside the bucket mutation. The read and the write are
// not transactional, so concurrent operations against the same date can lose
// intake updates; callers needing non-racy totals must serialize per date.
type LedgerRepository interface {
	LogFood(ctx context.Context, user string, food Food, meal Meal, dateKey string, currentIntake float64) error
	RemoveFood(ctx context.Context, user string, food Food, meal Meal, dateKey string, currentIntake float64) error
	FetchFoods(ctx context.Context, user, dateKey string) (*DayLog, error)
	FetchProteinIntake(ctx context.Context, user, dateKey string) (float64, error)
	FetchProteinGoal(ctx context.Context, user string) (*int, error)
	SetProteinGoal(ctx context.Context, user string, grams int) error
	FetchRecentFoods(ctx context.Context, user string) ([]Food, error)
	AddToRecentFoods(ctx context.Context, user string, food Food, currentRecent []Food) error
}

// CacheRepository defines the interface for caching resolved foods.
type CacheRepository interface {
	Get(ctx context.Context, key string) (*Food, error)
	Set(ctx context.Context, key string, food *Food, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
