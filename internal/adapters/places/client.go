// internal/adapters/places/client.go
package places

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"boutique_hotel/internal/adapters/observability"
	"boutique_hotel/internal/domain"
)

const (
	DefaultBase = "https://maps.googleapis.com/maps/api/place"
	maxPhotos   = 5
	photoWidth  = 800
)

var ErrNoKey = errors.New("places: API key is required")

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter // nil = unlimited
}

// New builds a client. rps <= 0 disables client-side limiting.
func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, ErrNoKey
	}
	if base == "" {
		base = DefaultBase
	}
	c := &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
		key:  key,
	}
	if rps > 0 {
		c.rl = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return c, nil
}

type searchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
}

// Photos runs text search, takes the first match and returns up to five
// photo URLs from its details. A provider status other than OK yields an
// empty result without error; transport failures are returned.
func (c *Client) Photos(ctx context.Context, query string) (domain.PlacePhotos, error) {
	empty := domain.PlacePhotos{Photos: []string{}}

	q := url.Values{}
	q.Set("query", query)
	q.Set("key", c.key)
	var sr searchResponse
	if err := c.get(ctx, "textsearch", c.base+"/textsearch/json?"+q.Encode(), &sr); err != nil {
		return empty, err
	}
	if sr.Status != "OK" || len(sr.Results) == 0 || sr.Results[0].PlaceID == "" {
		return empty, nil
	}
	placeID := sr.Results[0].PlaceID

	d := url.Values{}
	d.Set("place_id", placeID)
	d.Set("fields", "photos")
	d.Set("key", c.key)
	var dr detailsResponse
	if err := c.get(ctx, "details", c.base+"/details/json?"+d.Encode(), &dr); err != nil {
		return empty, err
	}
	if dr.Status != "OK" || len(dr.Result.Photos) == 0 {
		return empty, nil
	}

	out := domain.PlacePhotos{PlaceID: placeID, Photos: make([]string, 0, maxPhotos)}
	for _, p := range dr.Result.Photos {
		if len(out.Photos) == maxPhotos {
			break
		}
		if p.PhotoReference == "" {
			continue
		}
		out.Photos = append(out.Photos, c.photoURL(p.PhotoReference))
	}
	return out, nil
}

func (c *Client) photoURL(ref string) string {
	v := url.Values{}
	v.Set("maxwidth", strconv.Itoa(photoWidth))
	v.Set("photo_reference", ref)
	v.Set("key", c.key)
	return c.base + "/photo?" + v.Encode()
}

// get performs a GET with optional rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return err
		}
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "boutique-hotel/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("places", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 2 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("places: remote %d", resp.StatusCode)
			if i < 2 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("places: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
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

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
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

// backoff: 100ms, 200ms, 400ms... plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
