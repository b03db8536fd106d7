// Package config provides runtime configuration values for the marketplace binaries.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"marketbuyer/internal/domain"
)

// Venues — биржи, чьи стаканы можно подключить продавцами.
var Venues = []string{"binance", "bybit", "okx", "kucoin", "bitget", "htx", "gate"}

// Config holds configuration knobs for the HTTP server, the market and the exchange sellers.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration

	// MarketFile — JSON рынка; пусто = встроенный рынок.
	MarketFile string

	// Books — биржа -> товары, для которых подтягиваем стакан <PRODUCT>/USDT
	// (<VENUE>_PRODUCTS, например OKX_PRODUCTS=BTC,ETH).
	Books map[string][]string
	// BookWaits — задержка доставки продавца-биржи (<VENUE>_DELIVERY_WAIT).
	BookWaits map[string]time.Duration
	// Depth — глубина стакана и пауза между запросами, общие для всех бирж.
	Depth domain.Config
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenv(key string, def time.Duration) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func listenv(key string) []string {
	var out []string
	for _, p := range strings.Split(getenv(key, ""), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load collects configuration from environment with defaults.
func Load() Config {
	c := Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenv("SHUTDOWN_TIMEOUT", 10*time.Second),
		RequestTimeout:  durenv("REQUEST_TIMEOUT", 10*time.Second),
		MarketFile:      getenv("MARKET_FILE", ""),
		Books:           map[string][]string{},
		BookWaits:       map[string]time.Duration{},
		Depth: domain.Config{
			Limit:   atoienv("BOOK_DEPTH", 100),
			DelayMS: atoienv("BOOK_DELAY_MS", 100),
		},
	}
	for _, v := range Venues {
		prefix := strings.ToUpper(v)
		if products := listenv(prefix + "_PRODUCTS"); len(products) > 0 {
			c.Books[v] = products
		}
		if d := durenv(prefix+"_DELIVERY_WAIT", 0); d != 0 {
			c.BookWaits[v] = d
		}
	}
	return c
}

func knownVenue(v string) bool {
	for _, known := range Venues {
		if v == known {
			return true
		}
	}
	return false
}

// ParseBooks — записи вида "okx:BTC" (флаг CLI) в карту биржа -> товары.
func ParseBooks(entries []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, e := range entries {
		venue, product, ok := strings.Cut(strings.TrimSpace(e), ":")
		venue = strings.ToLower(strings.TrimSpace(venue))
		product = strings.TrimSpace(product)
		if !ok || product == "" {
			return nil, errors.Errorf("book %q: want venue:PRODUCT", e)
		}
		if !knownVenue(venue) {
			return nil, errors.Errorf("book %q: unknown venue %q", e, venue)
		}
		out[venue] = append(out[venue], product)
	}
	return out, nil
}

// Validate rejects values that would make the binaries misbehave.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("HTTP_ADDR is empty")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.Errorf("SHUTDOWN_TIMEOUT must be > 0, got %s", c.ShutdownTimeout)
	}
	if c.RequestTimeout <= 0 {
		return errors.Errorf("REQUEST_TIMEOUT must be > 0, got %s", c.RequestTimeout)
	}
	if c.Depth.Limit <= 0 {
		return errors.Errorf("BOOK_DEPTH must be > 0, got %d", c.Depth.Limit)
	}
	if c.Depth.DelayMS < 0 {
		return errors.Errorf("BOOK_DELAY_MS must be >= 0, got %d", c.Depth.DelayMS)
	}
	for v := range c.Books {
		if !knownVenue(v) {
			return errors.Errorf("unknown venue %q", v)
		}
	}
	for v, d := range c.BookWaits {
		if d < 0 {
			return errors.Errorf("%s_DELIVERY_WAIT must be >= 0, got %s", strings.ToUpper(v), d)
		}
	}
	return nil
}
