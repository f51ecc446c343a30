package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/prun-go/internal/domain/economy"
	"github.com/andrescamacho/prun-go/internal/domain/exchange"
	"github.com/andrescamacho/prun-go/internal/domain/shared"
)

const (
	defaultBaseURL     = "https://rest.fnar.net"
	defaultTimeout     = 30 * time.Second
	defaultRateLimit   = 4 // requests per second
	defaultMaxRetries  = 5
	defaultBackoffBase = time.Second
)

// SnapshotCache stores raw endpoint payloads between runs. Get reports a miss
// for entries older than maxAge; maxAge <= 0 disables expiry.
type SnapshotCache interface {
	Get(ctx context.Context, endpoint, key string, maxAge time.Duration) ([]byte, bool, error)
	Put(ctx context.Context, endpoint, key string, payload []byte) error
}

// ClientConfig customizes the FIO client. Zero values fall back to defaults.
type ClientConfig struct {
	BaseURL     string
	APIKey      string
	Username    string
	Timeout     time.Duration
	RateLimit   float64
	MaxRetries  int
	BackoffBase time.Duration
	Cache       SnapshotCache
	CacheMaxAge time.Duration
	Clock       shared.Clock
}

// FIOClient talks to the FIO REST API and converts its payloads into domain
// snapshots. It implements the planning and trading store ports.
//
// Materials and buildings are interned: every recipe line, site and order
// book referencing a ticker shares the same instance.
type FIOClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	apiKey      string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
	cache       SnapshotCache
	cacheMaxAge time.Duration
	validate    *validator.Validate

	mu        sync.Mutex
	username  string
	materials map[string]*economy.Material
	buildings map[string]*economy.Building
}

// NewFIOClient creates a FIO API client.
// Rate limit: 4 requests per second with burst of 4.
// Retry: max 5 attempts with 1s exponential backoff + jitter.
func NewFIOClient(config ClientConfig) *FIOClient {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.RateLimit <= 0 {
		config.RateLimit = defaultRateLimit
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = defaultMaxRetries
	}
	if config.BackoffBase <= 0 {
		config.BackoffBase = defaultBackoffBase
	}
	if config.Clock == nil {
		config.Clock = shared.NewRealClock()
	}
	return &FIOClient{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RateLimit), int(config.RateLimit)),
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		apiKey:      config.APIKey,
		maxRetries:  config.MaxRetries,
		backoffBase: config.BackoffBase,
		clock:       config.Clock,
		cache:       config.Cache,
		cacheMaxAge: config.CacheMaxAge,
		validate:    validator.New(),
		username:    strings.ToUpper(config.Username),
		materials:   make(map[string]*economy.Material),
		buildings:   make(map[string]*economy.Building),
	}
}

// Authenticate verifies the API key and returns the account's company code.
// Never cached.
func (c *FIOClient) Authenticate(ctx context.Context) (string, error) {
	body, err := c.request(ctx, "/auth")
	if err != nil {
		return "", fmt.Errorf("failed to authenticate: %w", err)
	}
	name := strings.ToUpper(strings.TrimSpace(string(body)))

	c.mu.Lock()
	c.username = name
	c.mu.Unlock()
	return name, nil
}

// Material retrieves one material snapshot
func (c *FIOClient) Material(ctx context.Context, ticker string) (*economy.Material, error) {
	ticker = strings.ToUpper(ticker)

	c.mu.Lock()
	if material, ok := c.materials[ticker]; ok {
		c.mu.Unlock()
		return material, nil
	}
	c.mu.Unlock()

	var dto materialDTO
	if err := c.getJSON(ctx, "material", ticker, "/material/"+ticker, &dto); err != nil {
		return nil, fmt.Errorf("failed to get material %s: %w", ticker, err)
	}
	material, err := convertMaterial(dto)
	if err != nil {
		return nil, fmt.Errorf("invalid material %s: %w", ticker, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.materials[ticker]; ok {
		return existing, nil
	}
	c.materials[ticker] = material
	return material, nil
}

// Building retrieves one building snapshot with its recipes and base
// construction costs
func (c *FIOClient) Building(ctx context.Context, ticker string) (*economy.Building, error) {
	ticker = strings.ToUpper(ticker)

	c.mu.Lock()
	if building, ok := c.buildings[ticker]; ok {
		c.mu.Unlock()
		return building, nil
	}
	c.mu.Unlock()

	var dto buildingDTO
	if err := c.getJSON(ctx, "building", ticker, "/building/"+ticker, &dto); err != nil {
		return nil, fmt.Errorf("failed to get building %s: %w", ticker, err)
	}
	building, err := convertBuilding(ctx, dto, c.Material)
	if err != nil {
		return nil, fmt.Errorf("invalid building %s: %w", ticker, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.buildings[ticker]; ok {
		return existing, nil
	}
	c.buildings[ticker] = building
	return building, nil
}

// Planet retrieves one planet's environment snapshot
func (c *FIOClient) Planet(ctx context.Context, planetID string) (*economy.Planet, error) {
	var dto planetDTO
	if err := c.getJSON(ctx, "planet", planetID, "/planet/"+planetID, &dto); err != nil {
		return nil, fmt.Errorf("failed to get planet %s: %w", planetID, err)
	}
	planet, err := convertPlanet(dto)
	if err != nil {
		return nil, fmt.Errorf("invalid planet %s: %w", planetID, err)
	}
	return planet, nil
}

// Site retrieves the authenticated account's base on a planet
func (c *FIOClient) Site(ctx context.Context, planetID string) (*economy.Site, error) {
	username, err := c.usernameFor(ctx)
	if err != nil {
		return nil, err
	}

	var dto siteDTO
	path := fmt.Sprintf("/sites/%s/%s", username, planetID)
	if err := c.getJSON(ctx, "site", username+"/"+planetID, path, &dto); err != nil {
		return nil, fmt.Errorf("failed to get site at %s: %w", planetID, err)
	}
	site, err := convertSite(ctx, dto, c.Building)
	if err != nil {
		return nil, fmt.Errorf("invalid site at %s: %w", planetID, err)
	}
	return site, nil
}

// Storage retrieves the authenticated account's storage on a planet
func (c *FIOClient) Storage(ctx context.Context, planetID string) (*economy.Storage, error) {
	username, err := c.usernameFor(ctx)
	if err != nil {
		return nil, err
	}

	var dto storageDTO
	path := fmt.Sprintf("/storage/%s/%s", username, planetID)
	if err := c.getJSON(ctx, "storage", username+"/"+planetID, path, &dto); err != nil {
		return nil, fmt.Errorf("failed to get storage at %s: %w", planetID, err)
	}
	storage, err := convertStorage(dto)
	if err != nil {
		return nil, fmt.Errorf("invalid storage at %s: %w", planetID, err)
	}
	return storage, nil
}

// MaterialExchange retrieves one order book snapshot
func (c *FIOClient) MaterialExchange(ctx context.Context, materialTicker, exchangeCode string) (*exchange.MaterialExchange, error) {
	pair := strings.ToUpper(materialTicker) + "." + strings.ToUpper(exchangeCode)

	var dto exchangeDTO
	if err := c.getJSON(ctx, "exchange", pair, "/exchange/"+pair, &dto); err != nil {
		return nil, fmt.Errorf("failed to get order book %s: %w", pair, err)
	}
	book, err := convertExchange(ctx, dto, c.Material)
	if err != nil {
		return nil, fmt.Errorf("invalid order book %s: %w", pair, err)
	}
	return book, nil
}

func (c *FIOClient) usernameFor(ctx context.Context) (string, error) {
	c.mu.Lock()
	username := c.username
	c.mu.Unlock()
	if username != "" {
		return username, nil
	}
	return c.Authenticate(ctx)
}

// getJSON fetches an endpoint payload (through the snapshot cache when one is
// configured), unmarshals it and validates the wire shape.
func (c *FIOClient) getJSON(ctx context.Context, endpoint, key, path string, result interface{}) error {
	body, err := c.fetch(ctx, endpoint, key, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if err := c.validate.Struct(result); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	return nil
}

func (c *FIOClient) fetch(ctx context.Context, endpoint, key, path string) ([]byte, error) {
	if c.cache != nil {
		payload, hit, err := c.cache.Get(ctx, endpoint, key, c.cacheMaxAge)
		if err != nil {
			log.Printf("WARNING: snapshot cache read failed for %s/%s: %v", endpoint, key, err)
		} else if hit {
			return payload, nil
		}
	}

	body, err := c.request(ctx, path)
	if err != nil {
		if errors.Is(err, errNoContent) {
			return nil, &NotFoundError{Kind: endpoint, Key: key}
		}
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, endpoint, key, body); err != nil {
			log.Printf("WARNING: snapshot cache write failed for %s/%s: %v", endpoint, key, err)
		}
	}
	return body, nil
}

var errNoContent = errors.New("no content")

// request makes a GET request with rate limiting and exponential backoff
// retries. 429 and 5xx responses and network errors retry; everything else
// fails immediately.
func (c *FIOClient) request(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			// FIO takes the key bare, without a Bearer prefix
			req.Header.Set("Authorization", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &retryableError{message: fmt.Sprintf("network error: %v", err)}
			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := time.Duration(0)
			if header := resp.Header.Get("Retry-After"); header != "" {
				if seconds, err := strconv.Atoi(header); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			}
			lastErr = &retryableError{message: "rate limited (429)"}
			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			delay := addJitter(c.backoffBase * time.Duration(1<<attempt))
			if retryAfter > 0 {
				// server-provided value, no jitter
				delay = retryAfter
			}
			c.clock.Sleep(delay)
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, &NotAuthenticatedError{Path: path}
		}

		// FIO signals an unknown entity with 204
		if resp.StatusCode == http.StatusNoContent {
			return nil, errNoContent
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return nil, fmt.Errorf("max retries exceeded")
}

// addJitter returns a duration between 50% and 150% of the original value to
// avoid thundering herd retries
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message string
}

func (e *retryableError) Error() string {
	return e.message
}
