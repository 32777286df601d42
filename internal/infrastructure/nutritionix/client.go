package nutritionix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the Nutritionix track API using
// API-key header authentication.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	appID       string
	appKey      string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Nutritionix API client
func NewClient(appID, appKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		appID:   appID,
		appKey:  appKey,
		// Nutritionix free tier allows 200 requests per day
		rateLimiter: rate.NewLimiter(rate.Limit(2), 20),
	}
}

// doRequest executes an authenticated request and returns the response body.
// jsonBody may be nil for GET requests.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, jsonBody any) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if jsonBody != nil {
		encoded, err := json.Marshal(jsonBody)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.appKey)
	req.Header.Set("x-remote-user-id", "0")
	if jsonBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("[Nutritionix] %s status %d: %s", path, resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	return body, nil
}

// Search performs an instant search. Common (name-keyed) results come first,
// then branded (id-keyed) results, matching the provider's relevance order
// within each category.
func (c *Client) Search(ctx context.Context, query string) ([]domain.FoodRef, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/search/instant", nil, map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	var decoded instantResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		log.Printf("[Nutritionix] Search decode error: %v", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	refs := make([]domain.FoodRef, 0, len(decoded.Common)+len(decoded.Branded))
	for _, item := range decoded.Common {
		refs = append(refs, domain.FoodRef{Kind: domain.RefCommon, Name: item.FoodName})
	}
	for _, item := range decoded.Branded {
		refs = append(refs, domain.FoodRef{
			Kind: domain.RefBranded,
			ID:   item.NixItemID,
			Name: item.FoodName,
		})
	}

	log.Printf("[Nutritionix] Found %d foods for query: %q", len(refs), query)
	return refs, nil
}

// Resolve fetches the full nutrient record for one search ref: a natural
// nutrients lookup for common foods, an item lookup for branded ones.
func (c *Client) Resolve(ctx context.Context, ref domain.FoodRef) (*domain.Food, error) {
	var body []byte
	var err error

	switch ref.Kind {
	case domain.RefCommon:
		if ref.Name == "" {
			return nil, domain.ErrFoodNotFound
		}
		body, err = c.doRequest(ctx, http.MethodPost, "/natural/nutrients", nil, map[string]string{"query": ref.Name})
	case domain.RefBranded:
		if ref.ID == "" {
			return nil, domain.ErrFoodNotFound
		}
		query := url.Values{}
		query.Set("nix_item_id", ref.ID)
		body, err = c.doRequest(ctx, http.MethodGet, "/search/item", query, nil)
	default:
		return nil, domain.ErrFoodNotFound
	}

	if err != nil {
		return nil, err
	}

	return parseNutrients(body)
}

// ResolveBarcode looks up a food by UPC via the item endpoint.
func (c *Client) ResolveBarcode(ctx context.Context, barcode string) (*domain.Food, error) {
	query := url.Values{}
	query.Set("upc", barcode)

	body, err := c.doRequest(ctx, http.MethodGet, "/search/item", query, nil)
	if err != nil {
		return nil, err
	}

	return parseNutrients(body)
}

// parseNutrients decodes a nutrients body and maps its first food.
func parseNutrients(body []byte) (*domain.Food, error) {
	var decoded nutrientsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		log.Printf("[Nutritionix] Nutrients decode error: %v", err)
		return nil, domain.ErrFoodNotFound
	}

	if len(decoded.Foods) == 0 {
		return nil, domain.ErrFoodNotFound
	}

	return mapFood(decoded.Foods[0])
}
