package binanceadapter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase/orderbook"

	gbinance "github.com/adshao/go-binance/v2"
)

// Client — источник стакана поверх публичного REST Binance (go-binance).
type Client struct {
	client *gbinance.Client
}

func NewClient() *Client {
	client := gbinance.NewClient("", "")
	// Чуть мягче таймаут: не висим долго, но и не рвём слишком быстро
	client.HTTPClient = &http.Client{Timeout: 7 * time.Second}
	return &Client{client: client}
}

// NewClientAt — клиент с другим адресом API (тестнет, зеркало).
func NewClientAt(baseURL string) *Client {
	c := NewClient()
	c.client.BaseURL = baseURL
	return c
}

func (c *Client) Asks(ctx context.Context, symbol string, limit int) ([]orderbook.Level, error) {
	depth, err := c.client.NewDepthService().Symbol(symbol).Limit(depthLimit(limit)).Do(ctx)
	if err != nil {
		return nil, err
	}
	asks := make([]orderbook.Level, 0, len(depth.Asks))
	for _, a := range depth.Asks {
		if l, ok := orderbook.ParseLevel(a.Price, a.Quantity); ok {
			asks = append(asks, l)
		}
	}
	return asks, nil
}

// Поддерживаемые лимиты Binance
func depthLimit(limit int) int {
	allowed := []int{5, 10, 20, 50, 100}
	for _, v := range allowed {
		if limit <= v {
			return v
		}
	}
	return allowed[len(allowed)-1]
}

// ID — имя продавца-биржи на рынке.
const ID = "binance"

// Symbol — тикер Binance: "BTC" -> "BTCUSDT".
func Symbol(product domain.Product) string {
	return strings.ToUpper(strings.TrimSpace(product)) + "USDT"
}
