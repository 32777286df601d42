package fatsecret

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
)

// newTestServer runs a fake FatSecret platform: a token endpoint plus a
// platform mux. tokenFetches counts token requests.
func newTestServer(t *testing.T, tokenFetches *atomic.Int64, platform http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/connect/token" {
			tokenFetches.Add(1)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			assert.Equal(t, "test-id", r.PostForm.Get("client_id"))
			assert.Equal(t, "test-secret", r.PostForm.Get("client_secret"))
			assert.Equal(t, "basic barcode", r.PostForm.Get("scope"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"test-token","expires_in":86400}`)
			return
		}

		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		platform(w, r)
	}))
	t.Cleanup(server.Close)

	return NewClient("test-id", "test-secret", server.URL, server.URL+"/connect/token")
}

const detailBody = `{"food":{"food_id":"33691","food_name":"Chicken Breast","servings":{"serving":[
	{"serving_description":"1 breast","metric_serving_amount":"120.000","number_of_units":"1.000","measurement_description":"breast","protein":"30.00"}
]}}}`

func TestSearch(t *testing.T) {
	var tokenFetches atomic.Int64
	client := newTestServer(t, &tokenFetches, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foods/search/v1", r.URL.Path)
		assert.Equal(t, "chicken", r.URL.Query().Get("search_expression"))
		assert.Equal(t, "20", r.URL.Query().Get("max_results"))

		fmt.Fprint(w, `{"foods":{"food":[
			{"food_id":"33691","food_name":"Chicken Breast","food_type":"Generic"},
			{"food_id":"510","food_name":"Chicken Strips","brand_name":"Tyson","food_type":"Brand"}
		]}}`)
	})

	refs, err := client.Search(context.Background(), "chicken")
	require.NoError(t, err)

	require.Len(t, refs, 2)
	assert.Equal(t, domain.FoodRef{Kind: domain.RefBranded, ID: "33691", Name: "Chicken Breast"}, refs[0])
	assert.Equal(t, domain.FoodRef{Kind: domain.RefBranded, ID: "510", Name: "Chicken Strips"}, refs[1])
	assert.Equal(t, int64(1), tokenFetches.Load())
}

func TestResolve(t *testing.T) {
	var tokenFetches atomic.Int64
	client := newTestServer(t, &tokenFetches, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/food/v4", r.URL.Path)
		assert.Equal(t, "33691", r.URL.Query().Get("food_id"))
		fmt.Fprint(w, detailBody)
	})

	food, err := client.Resolve(context.Background(), domain.FoodRef{Kind: domain.RefBranded, ID: "33691"})
	require.NoError(t, err)

	assert.Equal(t, "chicken breast", food.Name)
	assert.Equal(t, "unbranded", food.BrandName)
	assert.InDelta(t, 0.25, food.ProteinPerGram, 1e-9)
}

func TestResolve_EmptyID(t *testing.T) {
	var tokenFetches atomic.Int64
	client := newTestServer(t, &tokenFetches, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no platform request expected for an empty ref id")
	})

	food, err := client.Resolve(context.Background(), domain.FoodRef{Kind: domain.RefBranded})
	assert.Nil(t, food)
	assert.ErrorIs(t, err, domain.ErrFoodNotFound)
}

func TestResolve_MalformedBody(t *testing.T) {
	var tokenFetches atomic.Int64
	client := newTestServer(t, &tokenFetches, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	food, err := client.Resolve(context.Background(), domain.FoodRef{Kind: domain.RefBranded, ID: "1"})
	assert.Nil(t, food)
	assert.ErrorIs(t, err, domain.ErrFoodNotFound)
}

func TestResolveBarcode(t *testing.T) {
	var tokenFetches atomic.Int64
	client := newTestServer(t, &tokenFetches, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/food/barcode/find-by-id/v2", r.URL.Path)
		assert.Equal(t, "0049000000443", r.URL.Query().Get("barcode"))
		fmt.Fprint(w, detailBody)
	})

	food, err := client.ResolveBarcode(context.Background(), "0049000000443")
	require.NoError(t, err)
	assert.Equal(t, "chicken breast", food.Name)
}

func TestSearch_ProviderError(t *testing.T) {
	var tokenFetches atomic.Int64
	client := newTestServer(t, &tokenFetches, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	refs, err := client.Search(context.Background(), "chicken")
	assert.Nil(t, refs)
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
}

func TestTokenIsCachedAcrossCalls(t *testing.T) {
	var tokenFetches atomic.Int64
	client := newTestServer(t, &tokenFetches, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detailBody)
	})

	ctx := context.Background()
	for range 3 {
		_, err := client.Resolve(ctx, domain.FoodRef{Kind: domain.RefBranded, ID: "33691"})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), tokenFetches.Load())
}

func TestTokenRefreshedBeforeExpiry(t *testing.T) {
	var tokenFetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenFetches.Add(1)
		// expires_in below the 60s skew margin, so the cached token is
		// already stale on the next call
		fmt.Fprint(w, `{"access_token":"short-lived","expires_in":30}`)
	}))
	defer server.Close()

	tokens := newTokenManager(server.Client(), server.URL, "id", "secret")

	ctx := context.Background()
	_, err := tokens.Token(ctx)
	require.NoError(t, err)
	_, err = tokens.Token(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), tokenFetches.Load())
}

func TestConcurrentCallersShareOneTokenFetch(t *testing.T) {
	var tokenFetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenFetches.Add(1)
		time.Sleep(50 * time.Millisecond) // widen the stampede window
		fmt.Fprint(w, `{"access_token":"shared","expires_in":86400}`)
	}))
	defer server.Close()

	tokens := newTokenManager(server.Client(), server.URL, "id", "secret")

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := tokens.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "shared", token)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), tokenFetches.Load())
}

func TestTokenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := newTokenManager(server.Client(), server.URL, "id", "wrong")

	_, err := tokens.Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenFailure)
}
