package htxadapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-faster/errors"

	"marketbuyer/internal/adapters/exchange/rest"
	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase/orderbook"
)

const ID = "htx"

// Symbol — HTX (Huobi) использует "btcusdt": нижний регистр, без разделителей.
func Symbol(product domain.Product) string {
	return strings.ToLower(strings.TrimSpace(product)) + "usdt"
}

type Client struct {
	http *rest.Client
}

func NewClient() *Client { return NewClientAt("https://api.huobi.pro") }

func NewClientAt(baseURL string) *Client { return &Client{http: rest.New(baseURL)} }

type depthResp struct {
	Status string `json:"status"`
	ErrMsg string `json:"err-msg"`
	Tick   struct {
		Asks [][]float64 `json:"asks"` // [[price, amount], ...]
	} `json:"tick"`
}

func (c *Client) Asks(ctx context.Context, symbol string, limit int) ([]orderbook.Level, error) {
	// type=step0 — наименьшая агрегация. huobi не принимает limit — ограничим вручную.
	path := fmt.Sprintf("/market/depth?symbol=%s&type=step0", url.QueryEscape(symbol))
	var resp depthResp
	if err := c.http.GetJSON(ctx, path, &resp); err != nil {
		return nil, errors.Wrap(err, "htx: depth")
	}
	if resp.Status != "ok" {
		return nil, errors.Errorf("htx: API status=%s %s", resp.Status, resp.ErrMsg)
	}
	return orderbook.FloatRows(resp.Tick.Asks, limit), nil
}
