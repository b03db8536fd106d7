package gateadapter

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

const ID = "gate"

// Symbol — Gate.io использует "BTC_USDT".
func Symbol(product domain.Product) string {
	return strings.ToUpper(strings.TrimSpace(product)) + "_USDT"
}

type Client struct {
	http *rest.Client
}

func NewClient() *Client { return NewClientAt("https://api.gateio.ws") }

func NewClientAt(baseURL string) *Client { return &Client{http: rest.New(baseURL)} }

type bookResp struct {
	Label   string     `json:"label"` // код ошибки, если запрос не принят
	Message string     `json:"message"`
	Asks    [][]string `json:"asks"` // [[price, amount], ...]
}

func (c *Client) Asks(ctx context.Context, symbol string, limit int) ([]orderbook.Level, error) {
	if limit <= 0 {
		limit = 100
	}
	path := fmt.Sprintf("/api/v4/spot/order_book?currency_pair=%s&limit=%d", url.QueryEscape(symbol), limit)
	var resp bookResp
	if err := c.http.GetJSON(ctx, path, &resp); err != nil {
		return nil, errors.Wrap(err, "gate: order_book")
	}
	if resp.Label != "" {
		return nil, errors.Errorf("gate: API error: %s %s", resp.Label, resp.Message)
	}
	return orderbook.ParseRows(resp.Asks, 0), nil
}
