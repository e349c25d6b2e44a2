package postcodes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SamR2406/edurater/internal/public/application"
)

const defaultBaseURL = "https://api.postcodes.io"

// Client resolves UK postcodes through postcodes.io. A full postcode
// normalises to its canonical form; a partial one falls back to an
// outcode lookup.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client. An empty baseURL targets the public API; a zero
// timeout defaults to five seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type postcodeResponse struct {
	Status int `json:"status"`
	Result struct {
		Postcode string `json:"postcode"`
		Outcode  string `json:"outcode"`
	} `json:"result"`
}

type outcodeResponse struct {
	Status int `json:"status"`
	Result struct {
		Outcode string `json:"outcode"`
	} `json:"result"`
}

// Resolve looks the query up as a full postcode first, then as an
// outcode. A query matching neither resolves to the zero value without
// error, so callers can fall back to the raw input.
func (c *Client) Resolve(ctx context.Context, query string) (application.ResolvedPostcode, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return application.ResolvedPostcode{}, nil
	}

	var full postcodeResponse
	ok, err := c.getJSON(ctx, "/postcodes/"+url.PathEscape(query), &full)
	if err != nil {
		return application.ResolvedPostcode{}, err
	}
	if ok {
		return application.ResolvedPostcode{
			Postcode: full.Result.Postcode,
			Outcode:  full.Result.Outcode,
		}, nil
	}

	var partial outcodeResponse
	ok, err = c.getJSON(ctx, "/outcodes/"+url.PathEscape(query), &partial)
	if err != nil {
		return application.ResolvedPostcode{}, err
	}
	if ok {
		return application.ResolvedPostcode{Outcode: partial.Result.Outcode}, nil
	}
	return application.ResolvedPostcode{}, nil
}

// getJSON returns false without error on a 404, which the API uses for
// unknown postcodes.
func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return false, fmt.Errorf("postcodes lookup %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("postcodes lookup %s: decode: %w", path, err)
	}
	return true, nil
}
