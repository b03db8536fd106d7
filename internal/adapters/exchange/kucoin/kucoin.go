package kucoinadapter

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

const ID = "kucoin"

// Symbol — KuCoin использует формат "BTC-USDT".
func Symbol(product domain.Product) string {
	return strings.ToUpper(strings.TrimSpace(product)) + "-USDT"
}

type Client struct {
	http *rest.Client
}

func NewClient() *Client { return NewClientAt("https://api.kucoin.com") }

func NewClientAt(baseURL string) *Client { return &Client{http: rest.New(baseURL)} }

type bookResp struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Asks [][]string `json:"asks"` // [price, size]
	} `json:"data"`
}

// level — публичные срезы KuCoin: level2_20 и level2_100.
func level(limit int) int {
	if limit > 0 && limit <= 20 {
		return 20
	}
	return 100
}

func (c *Client) Asks(ctx context.Context, symbol string, limit int) ([]orderbook.Level, error) {
	path := fmt.Sprintf("/api/v1/market/orderbook/level2_%d?symbol=%s", level(limit), url.QueryEscape(symbol))
	var resp bookResp
	if err := c.http.GetJSON(ctx, path, &resp); err != nil {
		return nil, errors.Wrap(err, "kucoin: order book")
	}
	if resp.Code != "200000" {
		return nil, errors.Errorf("kucoin: API error code=%s %s", resp.Code, resp.Msg)
	}
	// Ограничим до limit вручную
	return orderbook.ParseRows(resp.Data.Asks, limit), nil
}
