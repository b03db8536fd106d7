package okxadapter

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

const ID = "okx"

// Symbol — у OKX формат "BTC-USDT".
func Symbol(product domain.Product) string {
	return strings.ToUpper(strings.TrimSpace(product)) + "-USDT"
}

type Client struct {
	http *rest.Client
}

func NewClient() *Client { return NewClientAt("https://www.okx.com") }

func NewClientAt(baseURL string) *Client { return &Client{http: rest.New(baseURL)} }

type booksResp struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		Asks [][]string `json:"asks"` // [[price, size, ...], ...]
	} `json:"data"`
}

// OKX отдаёт до 400 уровней
func clampLimit(limit int) int {
	if limit <= 0 || limit > 400 {
		return 400
	}
	return limit
}

func (c *Client) Asks(ctx context.Context, symbol string, limit int) ([]orderbook.Level, error) {
	path := fmt.Sprintf("/api/v5/market/books?instId=%s&sz=%d", url.QueryEscape(symbol), clampLimit(limit))
	var resp booksResp
	if err := c.http.GetJSON(ctx, path, &resp); err != nil {
		return nil, errors.Wrap(err, "okx: order book")
	}
	if resp.Code != "0" || len(resp.Data) == 0 {
		return nil, errors.Errorf("okx: API error: %s", resp.Msg)
	}
	return orderbook.ParseRows(resp.Data[0].Asks, 0), nil
}
