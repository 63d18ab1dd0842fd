package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boutique_hotel/internal/adapters/observability"
	"boutique_hotel/internal/domain"
)

const DefaultRemoteBase = "https://blob.vercel-storage.com"

var ErrNoToken = errors.New("remote blob: token is required")

// Remote talks to a Vercel Blob compatible object store. Objects are public
// and their absolute URL is the locator.
type Remote struct {
	base  string
	token string
	hc    *http.Client
}

func NewRemote(base, token string) (*Remote, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if base == "" {
		base = DefaultRemoteBase
	}
	return &Remote{
		base:  strings.TrimRight(base, "/"),
		token: token,
		hc:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (r *Remote) Kind() string { return "remote" }

type putResponse struct {
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
}

func (r *Remote) Put(ctx context.Context, journeyID, filename, contentType string, body io.Reader) (string, error) {
	pathname := "journeys/" + url.PathEscape(journeyID) + "/" + url.PathEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.base+"/"+pathname, body)
	if err != nil {
		return "", err
	}
	r.auth(req)
	req.Header.Set("x-content-type", contentType)
	req.Header.Set("x-add-random-suffix", "1")

	var out putResponse
	if err := r.do(req, "put", &out); err != nil {
		return "", err
	}
	if !domain.IsRemoteLocator(out.URL) {
		return "", fmt.Errorf("remote blob: unexpected url %q", out.URL)
	}
	return out.URL, nil
}

func (r *Remote) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := r.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("blob", "get", 0, time.Since(start))
		return nil, fmt.Errorf("remote blob: get: %w", err)
	}
	observability.ObserveExternal("blob", "get", resp.StatusCode, time.Since(start))
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, domain.ErrBlobMissing
	case resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, fmt.Errorf("remote blob: get status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (r *Remote) Delete(ctx context.Context, locator string) error {
	b, _ := json.Marshal(map[string][]string{"urls": {locator}})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/delete", bytes.NewReader(b))
	if err != nil {
		return err
	}
	r.auth(req)
	req.Header.Set("Content-Type", "application/json")
	return r.do(req, "delete", nil)
}

func (r *Remote) auth(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("x-api-version", "7")
}

func (r *Remote) do(req *http.Request, endpoint string, out any) error {
	start := time.Now()
	resp, err := r.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("blob", endpoint, 0, time.Since(start))
		return fmt.Errorf("remote blob: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("blob", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("remote blob: %s status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
