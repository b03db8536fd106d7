// Package rest — общий HTTP-клиент публичных REST API бирж без SDK.
package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// maxBody — ответ стакана больше этого не бывает; защита от мусора.
const maxBody = 4 << 20

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 7 * time.Second}, // мягкий таймаут
	}
}

// GetJSON — GET baseURL+path и разбор JSON в target.
func (c *Client) GetJSON(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", "marketbuyer/exchangebooks")
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "request")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("HTTP %s", resp.Status)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(target); err != nil {
		return errors.Wrap(err, "parse JSON")
	}
	return nil
}
