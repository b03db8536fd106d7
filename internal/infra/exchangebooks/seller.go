// Package exchangebooks — продавцы, чей склад — снимок стакана биржи.
package exchangebooks

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/golang/glog"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/shared/retry"
	"marketbuyer/internal/usecase/orderbook"
)

// ErrNoBook — по товару не загружен стакан.
var ErrNoBook = errors.New("no order book loaded")

// DepthSource — откуда брать asks стакана (адаптер биржи).
type DepthSource interface {
	Asks(ctx context.Context, symbol string, limit int) ([]orderbook.Level, error)
}

// SymbolFunc — товар -> тикер площадки (BTC -> "BTCUSDT", "BTC-USDT", ...).
type SymbolFunc func(product domain.Product) string

// Seller — продавец, чей склад по товару = asks стакана <PRODUCT>/USDT на одной бирже.
// Стакан загружается снимком (Load); Sell исполняется по снимку, на бирже ничего не покупается.
type Seller struct {
	id     string
	src    DepthSource
	symbol SymbolFunc
	config domain.Config
	wait   time.Duration

	mu    sync.Mutex
	books map[domain.Product][]orderbook.Level
}

func NewSeller(id string, src DepthSource, symbol SymbolFunc, config domain.Config, wait time.Duration) *Seller {
	return &Seller{
		id:     id,
		src:    src,
		symbol: symbol,
		config: config,
		wait:   wait,
		books:  map[domain.Product][]orderbook.Level{},
	}
}

func (s *Seller) ID() string { return s.id }

func (s *Seller) DeliveryWait() time.Duration { return s.wait }

// Load тянет стаканы по товарам. Товары с ошибкой пропускаются; ошибка
// возвращается, только если не загрузился ни один стакан.
func (s *Seller) Load(ctx context.Context, products []domain.Product) error {
	delay := time.Duration(s.config.DelayMS) * time.Millisecond
	loaded := 0
	var lastErr error
	for i, p := range products {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		symbol := s.symbol(p)
		var asks []orderbook.Level
		// 2 попытки — компромисс между скоростью и стабильностью
		err := retry.WithRetry(ctx, 2, 500*time.Millisecond, func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			var err error
			asks, err = s.src.Asks(ctx, symbol, s.config.Limit)
			return err
		})
		if err != nil {
			lastErr = errors.Wrapf(err, "%s: order book %s (limit=%d)", s.id, symbol, s.config.Limit)
			glog.Warningf("%v", lastErr)
			continue
		}
		asks = orderbook.Asks(asks)
		if len(asks) == 0 {
			glog.Warningf("%s: %s: empty book", s.id, symbol)
			continue
		}
		s.mu.Lock()
		s.books[p] = asks
		s.mu.Unlock()
		loaded++
	}
	if loaded == 0 && lastErr != nil {
		return lastErr
	}
	return nil
}

func (s *Seller) Inventory(product domain.Product) (domain.InventoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asks, ok := s.books[product]
	if !ok {
		return domain.InventoryEntry{}, false
	}
	return domain.InventoryEntry{Quantity: orderbook.Depth(asks)}, true
}

// Products — товары с непустым стаканом и их глубина.
func (s *Seller) Products() map[domain.Product]domain.InventoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Product]domain.InventoryEntry, len(s.books))
	for p, asks := range s.books {
		out[p] = domain.InventoryEntry{Quantity: orderbook.Depth(asks)}
	}
	return out
}

// Quote — лучший ask.
func (s *Seller) Quote(product domain.Product) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asks, ok := s.books[product]
	if !ok {
		return 0, errors.Wrapf(ErrNoBook, "%s %s", s.id, s.symbol(product))
	}
	return asks[0].Price, nil
}

// Sell проходит по уровням стакана; стоимость = сумма цена*объём по уровням.
// Выбранный до конца стакан убирается: товар больше не числится у продавца.
func (s *Seller) Sell(product domain.Product, qty float64) (domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asks, ok := s.books[product]
	if !ok || qty <= 0 {
		return domain.Receipt{}, nil
	}
	bought, cost, rest := orderbook.Take(asks, qty)
	if len(rest) == 0 {
		delete(s.books, product)
	} else {
		s.books[product] = rest
	}
	return domain.Receipt{BoughtQuantity: bought, Cost: cost}, nil
}
