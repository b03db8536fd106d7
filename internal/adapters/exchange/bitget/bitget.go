package bitgetadapter

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

const ID = "bitget"

// Symbol — у Bitget слитно: "BTCUSDT".
func Symbol(product domain.Product) string {
	return strings.ToUpper(strings.TrimSpace(product)) + "USDT"
}

type Client struct {
	http *rest.Client
}

func NewClient() *Client { return NewClientAt("https://api.bitget.com") }

func NewClientAt(baseURL string) *Client { return &Client{http: rest.New(baseURL)} }

type depthResp struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Asks [][]string `json:"asks"` // [[price, size]]
	} `json:"data"`
}

func (c *Client) Asks(ctx context.Context, symbol string, limit int) ([]orderbook.Level, error) {
	if limit <= 0 || limit > 100 { // поддерживаемые: 5,10,15,20,50,100
		limit = 100
	}
	path := fmt.Sprintf("/api/spot/v1/market/depth?symbol=%s&limit=%d", url.QueryEscape(symbol), limit)
	var resp depthResp
	if err := c.http.GetJSON(ctx, path, &resp); err != nil {
		return nil, errors.Wrap(err, "bitget: depth")
	}
	if resp.Code != "00000" {
		return nil, errors.Errorf("bitget: API error: %s", resp.Msg)
	}
	return orderbook.ParseRows(resp.Data.Asks, 0), nil
}
