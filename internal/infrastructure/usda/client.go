package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mealwise/backend/internal/domain"
	"github.com/mealwise/backend/pkg/logger"
)

const requestTimeout = 10 * time.Second

// Client handles communication with the USDA FoodData Central API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	log         *zap.Logger
}

// NewClient creates a new USDA API client. The API key may be empty here;
// calls will fail with domain.ErrMissingAPIKey before any request is made.
func NewClient(apiKey, baseURL string) *Client {
	// USDA allows 1000 requests per hour: 1000/3600 ≈ 0.278 requests/sec
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		log:         logger.WithModule("usda"),
	}
}

// Search queries the USDA database and returns the candidate food records in
// ranked order. The list may be empty when nothing matched.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]domain.FoodRecord, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	endpoint := fmt.Sprintf("%s/v1/foods/search", c.baseURL)
	params := url.Values{}
	params.Add("query", query)
	params.Add("pageSize", strconv.Itoa(pageSize))

	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var searchResp domain.SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	c.log.Debug("search completed",
		zap.String("query", query),
		zap.Int("foods", len(searchResp.Foods)))

	return searchResp.Foods, nil
}

// FetchFood retrieves the detailed record for a specific food by FDC ID.
func (c *Client) FetchFood(ctx context.Context, fdcID int64) (*domain.FoodRecord, error) {
	endpoint := fmt.Sprintf("%s/v1/food/%d", c.baseURL, fdcID)

	body, err := c.get(ctx, endpoint, url.Values{})
	if err != nil {
		return nil, err
	}

	var food domain.FoodRecord
	if err := json.Unmarshal(body, &food); err != nil {
		return nil, fmt.Errorf("decode food response: %w", err)
	}

	return &food, nil
}

// get executes a single GET request against the API. There is no retry loop;
// transient failures surface to the caller as *domain.TransportError.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	params.Add("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mealwise/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("api error",
			zap.Int("status", resp.StatusCode),
			zap.String("url", endpoint))
		return nil, &domain.TransportError{StatusCode: resp.StatusCode}
	}

	return body, nil
}
