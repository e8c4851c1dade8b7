package thorchain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const DefaultBaseURL = "https://thornode.ninerealms.com"

type QuoteResponse struct {
	InboundAddress      string    `json:"inbound_address"`
	Router              string    `json:"router"`
	Expiry              int64     `json:"expiry"`
	Memo                string    `json:"memo"`
	ExpectedAmountOut   string    `json:"expected_amount_out"`
	DustThreshold       string    `json:"dust_threshold"`
	RecommendedMinIn    string    `json:"recommended_min_amount_in"`
	Fees                QuoteFees `json:"fees"`
	OutboundDelaySecs   int64     `json:"outbound_delay_seconds"`
	TotalSwapSeconds    int64     `json:"total_swap_seconds"`
	StreamingSwapBlocks int64     `json:"streaming_swap_blocks"`
	Warning             string    `json:"warning"`
	Notes               string    `json:"notes"`
}

// QuoteFees are denominated in the output asset, in 1e8 units.
type QuoteFees struct {
	Asset       string `json:"asset"`
	Affiliate   string `json:"affiliate"`
	Outbound    string `json:"outbound"`
	Liquidity   string `json:"liquidity"`
	Total       string `json:"total"`
	SlippageBps int    `json:"slippage_bps"`
	TotalBps    int    `json:"total_bps"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	mu         sync.Mutex
	lastReq    time.Time
	interval   time.Duration
}

// NewClient creates a thornode client. An empty baseURL uses DefaultBaseURL and
// a nil httpClient a client with a 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		interval:   time.Second,
	}
}

// rateLimit enforces one request per interval. It gives up early if ctx ends.
func (c *Client) rateLimit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if wait := c.interval - time.Since(c.lastReq); wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	c.lastReq = time.Now()
	return nil
}

// GetQuote requests a swap quote. amount is in 1e8 units; destination may be empty.
func (c *Client) GetQuote(ctx context.Context, fromAsset, toAsset, destination string, amount int64) (*QuoteResponse, error) {
	if err := c.rateLimit(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("from_asset", fromAsset)
	params.Set("to_asset", toAsset)
	params.Set("amount", fmt.Sprintf("%d", amount))
	if destination != "" {
		params.Set("destination", destination)
	}
	params.Set("streaming_interval", "1")
	params.Set("streaming_quantity", "0")

	reqURL := fmt.Sprintf("%s/thorchain/quote/swap?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting quote: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned %d: %s", resp.StatusCode, string(body))
	}

	var quote QuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("parsing quote: %w", err)
	}

	return &quote, nil
}
