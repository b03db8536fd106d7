package bybitadapter

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

const ID = "bybit"

// Symbol — у Bybit слитно: "BTCUSDT".
func Symbol(product domain.Product) string {
	return strings.ToUpper(strings.TrimSpace(product)) + "USDT"
}

type Client struct {
	http *rest.Client
}

func NewClient() *Client { return NewClientAt("https://api.bybit.com") }

func NewClientAt(baseURL string) *Client { return &Client{http: rest.New(baseURL)} }

type orderbookResp struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Asks [][]string `json:"a"`
	} `json:"result"`
}

func clampLimit(limit int) int {
	allowed := []int{1, 3, 5, 10, 20, 50, 100}
	for _, v := range allowed {
		if limit <= v {
			return v
		}
	}
	return allowed[len(allowed)-1]
}

func (c *Client) Asks(ctx context.Context, symbol string, limit int) ([]orderbook.Level, error) {
	path := fmt.Sprintf("/v5/market/orderbook?category=spot&symbol=%s&limit=%d", url.QueryEscape(symbol), clampLimit(limit))
	var resp orderbookResp
	if err := c.http.GetJSON(ctx, path, &resp); err != nil {
		return nil, errors.Wrap(err, "bybit: order book")
	}
	if resp.RetCode != 0 {
		return nil, errors.Errorf("bybit: API error: %s", resp.RetMsg)
	}
	return orderbook.ParseRows(resp.Result.Asks, 0), nil
}
