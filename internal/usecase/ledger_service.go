package usecase

import (
	"context"
	"log"
	"time"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
)

// LedgerService coordinates food logging against the ledger repository:
// stamping consumption times, keeping the intake total consistent with
// add/remove operations, and maintaining the recent-foods list.
//
// The intake update is a read-modify-write across two calls (read current
// intake, then write the adjusted total with the bucket mutation). There is
// no optimistic-concurrency check, so concurrent log/remove operations
// against the same date can lose intake updates.
type LedgerService struct {
	repo domain.LedgerRepository
	now  func() time.Time
}

// NewLedgerService creates a new ledger service
func NewLedgerService(repo domain.LedgerRepository) *LedgerService {
	return &LedgerService{
		repo: repo,
		now:  time.Now,
	}
}

// validateFood rejects foods that cannot be logged.
func validateFood(food domain.Food) error {
	if food.Name == "" || len(food.Measures) == 0 {
		return domain.ErrInvalidRequest
	}
	if food.Multiplier <= 0 || food.SelectedMeasure.MassGrams <= 0 {
		return domain.ErrInvalidRequest
	}
	return nil
}

// LogFood stamps the food's consumption time at call time (second
// granularity) and appends it to the meal bucket for dateKey, adding its
// protein to the daily total. The stamped food is also pushed onto the
// user's recent-foods list.
func (s *LedgerService) LogFood(ctx context.Context, user string, food domain.Food, meal domain.Meal, dateKey string) (domain.Food, error) {
	if err := validateFood(food); err != nil {
		return food, err
	}
	if !domain.ValidDateKey(dateKey) {
		return food, domain.ErrInvalidRequest
	}

	timestamp := domain.FormatTimestamp(s.now())
	food.ConsumptionTime = &timestamp

	currentIntake, err := s.repo.FetchProteinIntake(ctx, user, dateKey)
	if err != nil {
		return food, err
	}

	if err := s.repo.LogFood(ctx, user, food, meal, dateKey, currentIntake); err != nil {
		return food, err
	}

	// Recent-foods maintenance is best effort; a failure here must not undo
	// a successful log.
	recent, err := s.repo.FetchRecentFoods(ctx, user)
	if err != nil {
		log.Printf("[Ledger] recent foods fetch failed for %s: %v", user, err)
		return food, nil
	}
	if err := s.repo.AddToRecentFoods(ctx, user, food, recent); err != nil {
		log.Printf("[Ledger] recent foods update failed for %s: %v", user, err)
	}

	return food, nil
}

// RemoveFood removes the exact-value match of food from the meal bucket and
// subtracts its protein from the daily total. food must be a value previously
// retrieved from this ledger (including its consumption time); removing an
// absent entry succeeds without changing the bucket.
func (s *LedgerService) RemoveFood(ctx context.Context, user string, food domain.Food, meal domain.Meal, dateKey string) error {
	if !domain.ValidDateKey(dateKey) {
		return domain.ErrInvalidRequest
	}

	currentIntake, err := s.repo.FetchProteinIntake(ctx, user, dateKey)
	if err != nil {
		return err
	}

	return s.repo.RemoveFood(ctx, user, food, meal, dateKey, currentIntake)
}

// EditFood re-logs a food with a new measure or multiplier. Logging an edited
// entry is remove-old-then-add-new, never an in-place update, so the intake
// total stays consistent with both writes.
func (s *LedgerService) EditFood(ctx context.Context, user string, oldFood, newFood domain.Food, meal domain.Meal, dateKey string) (domain.Food, error) {
	if err := s.RemoveFood(ctx, user, oldFood, meal, dateKey); err != nil {
		return newFood, err
	}
	return s.LogFood(ctx, user, newFood, meal, dateKey)
}

// Day returns the meal buckets and intake total for dateKey.
func (s *LedgerService) Day(ctx context.Context, user, dateKey string) (*domain.DayLog, error) {
	if !domain.ValidDateKey(dateKey) {
		return nil, domain.ErrInvalidRequest
	}
	return s.repo.FetchFoods(ctx, user, dateKey)
}

// RecentFoods returns up to 10 recently logged foods, newest first.
func (s *LedgerService) RecentFoods(ctx context.Context, user string) ([]domain.Food, error) {
	return s.repo.FetchRecentFoods(ctx, user)
}

// ProteinGoal returns the user's goal; nil means unset.
func (s *LedgerService) ProteinGoal(ctx context.Context, user string) (*int, error) {
	return s.repo.FetchProteinGoal(ctx, user)
}

// SetProteinGoal stores a manually chosen goal.
func (s *LedgerService) SetProteinGoal(ctx context.Context, user string, grams int) error {
	if grams <= 0 {
		return domain.ErrInvalidRequest
	}
	return s.repo.SetProteinGoal(ctx, user, grams)
}

// CalculateProteinGoal derives a goal from the calculator inputs, stores it,
// and returns it.
func (s *LedgerService) CalculateProteinGoal(ctx context.Context, user string, heightM, weightKg float64, activity Activity) (int, error) {
	goal, err := ProteinGoalFor(heightM, weightKg, activity)
	if err != nil {
		return 0, err
	}
	if err := s.repo.SetProteinGoal(ctx, user, goal); err != nil {
		return 0, err
	}
	return goal, nil
}
