// Package catalog fetches the brand's published content feed (destinations
// and events) over HTTP with client-side rate limiting and retries.
package catalog

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"voyage_booking/internal/adapters/observability"
	"voyage_booking/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// feed wire shapes; dates arrive as YYYY-MM-DD strings.

type destinationDoc struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Region      *string  `json:"region"`
	Description *string  `json:"description"`
	Price       string   `json:"price"`
	Rating      *float64 `json:"rating"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Images      []string `json:"images"`
}

type eventDoc struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Venue       *string `json:"location"`
	Date        string  `json:"date"`
	Price       string  `json:"price"`
	Description *string `json:"description"`
}

func (c *Client) FetchDestinations(ctx context.Context) ([]domain.Destination, error) {
	var docs []destinationDoc
	if err := c.get(ctx, c.base+"/destinations", "destinations", &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Destination, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Destination{
			ID:          d.ID,
			Name:        d.Name,
			Region:      d.Region,
			Description: d.Description,
			Price:       d.Price,
			Rating:      d.Rating,
			Lat:         d.Lat,
			Lon:         d.Lon,
			Images:      d.Images,
		})
	}
	return out, nil
}

func (c *Client) FetchEvents(ctx context.Context) ([]domain.Event, error) {
	var docs []eventDoc
	if err := c.get(ctx, c.base+"/events", "events", &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(docs))
	for _, d := range docs {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, fmt.Errorf("event %d: bad date %q: %w", d.ID, d.Date, err)
		}
		out = append(out, domain.Event{
			ID:          d.ID,
			Name:        d.Name,
			Venue:       d.Venue,
			Date:        date,
			Price:       d.Price,
			Description: d.Description,
		})
	}
	return out, nil
}

// ---- Internals ----

var ErrNotFound = errors.New("catalog: not found")

// get performs a GET with client-side rate limiting, retries and JSON
// decode into out. Retries on 429 and transient 5xx, honoring Retry-After
// when provided.
func (c *Client) get(ctx context.Context, url, endpoint string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "voyage-booking/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("catalog", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles each attempt (200ms, 400ms, 800ms...) with up to +50%
// jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
