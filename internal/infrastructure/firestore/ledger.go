// Package firestore persists the per-user food ledger in Google Cloud
// Firestore. Each user owns one document keyed by account email with
// top-level fields proteinGoal, recentFoods, and one field per ledger date
// key holding the four meal buckets plus the proteinIntake total.
package firestore

import (
	"context"
	"fmt"
	"log"
	"math"
	"reflect"
	"sort"
	"time"

	cf "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
)

// Ledger implements domain.LedgerRepository on top of a Firestore client.
type Ledger struct {
	client     *cf.Client
	collection string
}

// NewClient connects to Firestore for the given project. credentialsFile may
// be empty to use application default credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*cf.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := cf.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}

// NewLedger creates a ledger backed by the given users collection.
func NewLedger(client *cf.Client, collection string) *Ledger {
	return &Ledger{client: client, collection: collection}
}

func (l *Ledger) doc(user string) *cf.DocumentRef {
	return l.client.Collection(l.collection).Doc(user)
}

// LogFood appends food to the meal bucket for dateKey and writes the adjusted
// intake total in the same merge write. currentIntake was read by the caller
// before this call, so concurrent loggers for the same date can lose intake
// updates.
func (l *Ledger) LogFood(ctx context.Context, user string, food domain.Food, meal domain.Meal, dateKey string, currentIntake float64) error {
	changedIntake := currentIntake + food.ProteinGrams()

	_, err := l.doc(user).Set(ctx, map[string]interface{}{
		dateKey: map[string]interface{}{
			string(meal):    cf.ArrayUnion(food),
			"proteinIntake": changedIntake,
		},
	}, cf.MergeAll)
	if err != nil {
		log.Printf("[Ledger] LogFood write failed for %s/%s: %v", user, dateKey, err)
		return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
	}
	return nil
}

// RemoveFood removes the exact-value match of food from the meal bucket and
// writes the adjusted intake. Removing an absent entry succeeds without
// touching the bucket or the intake total. The absolute value guards against
// prior floating-point drift leaving a small negative total.
func (l *Ledger) RemoveFood(ctx context.Context, user string, food domain.Food, meal domain.Meal, dateKey string, currentIntake float64) error {
	day, err := l.FetchFoods(ctx, user, dateKey)
	if err != nil {
		return err
	}
	if !ContainsFood(day.Bucket(meal), food) {
		return nil
	}

	changedIntake := math.Abs(currentIntake - food.ProteinGrams())

	_, err = l.doc(user).Set(ctx, map[string]interface{}{
		dateKey: map[string]interface{}{
			string(meal):    cf.ArrayRemove(food),
			"proteinIntake": changedIntake,
		},
	}, cf.MergeAll)
	if err != nil {
		log.Printf("[Ledger] RemoveFood write failed for %s/%s: %v", user, dateKey, err)
		return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
	}
	return nil
}

// fetchData returns the user document's data, or an empty map when the
// document does not exist yet.
func (l *Ledger) fetchData(ctx context.Context, user string) (map[string]interface{}, error) {
	snap, err := l.doc(user).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user document: %w", err)
	}
	return snap.Data(), nil
}

// FetchFoods returns the four meal buckets for dateKey. Buckets with no data
// are empty, not an error.
func (l *Ledger) FetchFoods(ctx context.Context, user, dateKey string) (*domain.DayLog, error) {
	data, err := l.fetchData(ctx, user)
	if err != nil {
		return nil, err
	}

	day := &domain.DayLog{
		Breakfast: []domain.Food{},
		Lunch:     []domain.Food{},
		Dinner:    []domain.Food{},
		Snacks:    []domain.Food{},
	}

	dateData, ok := data[dateKey].(map[string]interface{})
	if !ok {
		return day, nil
	}

	for _, meal := range domain.Meals {
		entries, ok := dateData[string(meal)].([]interface{})
		if !ok {
			continue
		}
		bucket := make([]domain.Food, 0, len(entries))
		for _, entry := range entries {
			if m, ok := entry.(map[string]interface{}); ok {
				bucket = append(bucket, parseFood(m))
			}
		}
		switch meal {
		case domain.MealBreakfast:
			day.Breakfast = bucket
		case domain.MealLunch:
			day.Lunch = bucket
		case domain.MealDinner:
			day.Dinner = bucket
		case domain.MealSnacks:
			day.Snacks = bucket
		}
	}

	day.ProteinIntake = roundTenth(asFloat(dateData["proteinIntake"]))
	return day, nil
}

// FetchProteinIntake returns the running intake total for dateKey, 0.0 when
// absent, rounded to one decimal place for display.
func (l *Ledger) FetchProteinIntake(ctx context.Context, user, dateKey string) (float64, error) {
	data, err := l.fetchData(ctx, user)
	if err != nil {
		return 0, err
	}

	dateData, ok := data[dateKey].(map[string]interface{})
	if !ok {
		return 0, nil
	}

	return roundTenth(asFloat(dateData["proteinIntake"])), nil
}

// FetchProteinGoal returns the user's protein goal; nil means unset, which
// callers must render as a prompt rather than a zero value.
func (l *Ledger) FetchProteinGoal(ctx context.Context, user string) (*int, error) {
	data, err := l.fetchData(ctx, user)
	if err != nil {
		return nil, err
	}

	raw, ok := data["proteinGoal"]
	if !ok {
		return nil, nil
	}

	goal := int(asFloat(raw))
	return &goal, nil
}

// SetProteinGoal stores the user's protein goal.
func (l *Ledger) SetProteinGoal(ctx context.Context, user string, grams int) error {
	_, err := l.doc(user).Set(ctx, map[string]interface{}{
		"proteinGoal": grams,
	}, cf.MergeAll)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
	}
	return nil
}

// FetchRecentFoods returns up to 10 previously logged foods, newest first by
// consumption time.
func (l *Ledger) FetchRecentFoods(ctx context.Context, user string) ([]domain.Food, error) {
	data, err := l.fetchData(ctx, user)
	if err != nil {
		return nil, err
	}

	entries, ok := data["recentFoods"].([]interface{})
	if !ok {
		return []domain.Food{}, nil
	}

	recent := make([]domain.Food, 0, len(entries))
	for _, entry := range entries {
		if m, ok := entry.(map[string]interface{}); ok {
			recent = append(recent, parseFood(m))
		}
	}

	SortNewestFirst(recent)
	return recent, nil
}

// AddToRecentFoods inserts food into the recent list, evicting the oldest
// entry first when the list already holds 10. currentRecent must be in
// newest-first order as returned by FetchRecentFoods.
func (l *Ledger) AddToRecentFoods(ctx context.Context, user string, food domain.Food, currentRecent []domain.Food) error {
	if oldest, evict := EvictionCandidate(currentRecent); evict {
		_, err := l.doc(user).Set(ctx, map[string]interface{}{
			"recentFoods": cf.ArrayRemove(oldest),
		}, cf.MergeAll)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
		}
	}

	_, err := l.doc(user).Set(ctx, map[string]interface{}{
		"recentFoods": cf.ArrayUnion(food),
	}, cf.MergeAll)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
	}
	return nil
}

// ContainsFood reports whether bucket holds a structurally identical entry:
// all fields including the consumption time must match, mirroring the
// store's array-removal equality.
func ContainsFood(bucket []domain.Food, food domain.Food) bool {
	for _, entry := range bucket {
		if reflect.DeepEqual(entry, food) {
			return true
		}
	}
	return false
}

// maxRecentFoods bounds the recent-foods list.
const maxRecentFoods = 10

// EvictionCandidate returns the entry to drop before inserting into a full
// recent-foods list: the last one in newest-first order, i.e. the oldest by
// consumption time.
func EvictionCandidate(recent []domain.Food) (domain.Food, bool) {
	if len(recent) < maxRecentFoods {
		return domain.Food{}, false
	}
	return recent[len(recent)-1], true
}

// SortNewestFirst stable-sorts foods by consumption time descending. Entries
// with missing or unparsable timestamps sink to the end.
func SortNewestFirst(foods []domain.Food) {
	sort.SliceStable(foods, func(i, j int) bool {
		ti, iOK := consumedAt(foods[i])
		tj, jOK := consumedAt(foods[j])
		if iOK != jOK {
			return iOK
		}
		return ti.After(tj)
	})
}

func consumedAt(food domain.Food) (time.Time, bool) {
	if food.ConsumptionTime == nil {
		return time.Time{}, false
	}
	t, err := domain.ParseTimestamp(*food.ConsumptionTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseFood converts a stored food map back into a Food value. Firestore
// returns numbers as int64 or float64 depending on how they were written, so
// both are accepted.
func parseFood(data map[string]interface{}) domain.Food {
	food := domain.Food{
		Name:           asString(data["food"]),
		ProteinPerGram: asFloat(data["proteinPerGram"]),
		BrandName:      asString(data["brandName"]),
		Multiplier:     asFloat(data["multiplier"]),
	}

	if raw, ok := data["measures"].([]interface{}); ok {
		for _, entry := range raw {
			if m, ok := entry.(map[string]interface{}); ok {
				food.Measures = append(food.Measures, parseMeasure(m))
			}
		}
	}

	if m, ok := data["selectedMeasure"].(map[string]interface{}); ok {
		food.SelectedMeasure = parseMeasure(m)
	}

	if ts, ok := data["consumptionTime"].(string); ok {
		food.ConsumptionTime = &ts
	}

	return food
}

func parseMeasure(data map[string]interface{}) domain.Measure {
	return domain.Measure{
		Expression: asString(data["measureExpression"]),
		MassGrams:  asFloat(data["measureMass"]),
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
