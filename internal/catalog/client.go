package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Google Books volumes endpoint.
const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

const (
	// maxResults caps every search request.
	maxResults = 20
	// Cache trim thresholds: once more than maxCachedQueries distinct
	// queries are held, only the keepCachedQueries most recent survive.
	maxCachedQueries  = 10
	keepCachedQueries = 5
)

// Client searches the external catalog. Responses are cached per query
// string in memory; repeated searches never hit the network.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter

	mu    sync.Mutex
	cache map[string][]Item
	order []string
}

// NewClient builds a search client. baseURL falls back to
// DefaultBaseURL; apiKey may be empty (the endpoint allows keyless
// requests at a lower quota). rps bounds outgoing requests per second.
func NewClient(baseURL, apiKey string, rps int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		cache:      make(map[string][]Item),
	}
}

// Search resolves a free-text query to normalized items. A blank query
// returns no results and no error. An empty result set from the API is
// not an error either.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	c.mu.Lock()
	if items, ok := c.cache[query]; ok {
		c.mu.Unlock()
		return append([]Item(nil), items...), nil
	}
	c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s?q=%s&maxResults=%d", c.baseURL, url.QueryEscape(query), maxResults)
	if c.apiKey != "" {
		u += "&key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("searching catalog: unexpected status %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}

	items := make([]Item, 0, len(payload.Items))
	for _, raw := range payload.Items {
		items = append(items, normalize(raw.ID, raw.VolumeInfo))
	}

	c.store(query, items)
	return append([]Item(nil), items...), nil
}

// ClearCache drops all cached queries.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string][]Item)
	c.order = nil
}

// store caches a result set and trims old entries past the threshold.
func (c *Client) store(query string, items []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cache[query]; !ok {
		c.order = append(c.order, query)
	}
	c.cache[query] = items

	if len(c.order) > maxCachedQueries {
		keep := c.order[len(c.order)-keepCachedQueries:]
		fresh := make(map[string][]Item, len(keep))
		for _, q := range keep {
			fresh[q] = c.cache[q]
		}
		c.cache = fresh
		c.order = append([]string(nil), keep...)
	}
}
