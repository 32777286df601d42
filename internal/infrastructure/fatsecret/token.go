package fatsecret

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
)

// tokenSkew refreshes the bearer token this long before its literal expiry
// to absorb clock skew between us and the token endpoint.
const tokenSkew = 60 * time.Second

// tokenManager acquires and caches an OAuth2 client-credentials bearer token.
// The mutex is held across the refresh request, so concurrent callers block
// on a single in-flight fetch instead of stampeding the token endpoint.
type tokenManager struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string
	scope        string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func newTokenManager(httpClient *http.Client, tokenURL, clientID, clientSecret string) *tokenManager {
	return &tokenManager{
		httpClient:   httpClient,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        "basic barcode",
	}
}

// tokenResponse models the token endpoint's JSON body
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token returns a valid bearer token, fetching a new one only when the cached
// token is absent or within the skew margin of expiry.
func (t *tokenManager) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Now().Before(t.expiresAt) {
		return t.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", t.clientID)
	form.Set("client_secret", t.clientSecret)
	form.Set("scope", t.scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		log.Printf("[FatSecret] Token error: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrTokenFailure, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("[FatSecret] Token endpoint status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", domain.ErrTokenFailure, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		log.Printf("[FatSecret] Token response unexpected: %s", string(body))
		return "", fmt.Errorf("%w: malformed token response", domain.ErrTokenFailure)
	}

	t.token = tr.AccessToken
	t.expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenSkew)

	return t.token, nil
}
