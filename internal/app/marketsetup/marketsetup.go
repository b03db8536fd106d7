package marketsetup

import (
	"context"

	"github.com/golang/glog"

	binanceadapter "marketbuyer/internal/adapters/exchange/binance"
	bitgetadapter "marketbuyer/internal/adapters/exchange/bitget"
	bybitadapter "marketbuyer/internal/adapters/exchange/bybit"
	gateadapter "marketbuyer/internal/adapters/exchange/gate"
	htxadapter "marketbuyer/internal/adapters/exchange/htx"
	kucoinadapter "marketbuyer/internal/adapters/exchange/kucoin"
	okxadapter "marketbuyer/internal/adapters/exchange/okx"
	"marketbuyer/internal/config"
	"marketbuyer/internal/infra/exchangebooks"
	"marketbuyer/internal/infra/marketplace"
)

// Venue — биржа, из стаканов которой собирается продавец.
type Venue struct {
	ID     string
	Symbol exchangebooks.SymbolFunc
	Source exchangebooks.DepthSource
}

// Venues — все поддерживаемые биржи с настоящими клиентами.
func Venues() []Venue {
	return []Venue{
		{ID: binanceadapter.ID, Symbol: binanceadapter.Symbol, Source: binanceadapter.NewClient()},
		{ID: bybitadapter.ID, Symbol: bybitadapter.Symbol, Source: bybitadapter.NewClient()},
		{ID: okxadapter.ID, Symbol: okxadapter.Symbol, Source: okxadapter.NewClient()},
		{ID: kucoinadapter.ID, Symbol: kucoinadapter.Symbol, Source: kucoinadapter.NewClient()},
		{ID: bitgetadapter.ID, Symbol: bitgetadapter.Symbol, Source: bitgetadapter.NewClient()},
		{ID: htxadapter.ID, Symbol: htxadapter.Symbol, Source: htxadapter.NewClient()},
		{ID: gateadapter.ID, Symbol: gateadapter.Symbol, Source: gateadapter.NewClient()},
	}
}

// Build — рынок из конфигурации: файл (или встроенный рынок) плюс
// по продавцу на каждую биржу, для которой заданы <VENUE>_PRODUCTS.
func Build(ctx context.Context, cfg config.Config) (*marketplace.Market, error) {
	return BuildWith(ctx, cfg, Venues())
}

// BuildWith — то же, но с явным списком бирж.
// Ошибка биржи не фатальна: рынок работает без её продавца.
func BuildWith(ctx context.Context, cfg config.Config, venues []Venue) (*marketplace.Market, error) {
	var (
		m   *marketplace.Market
		err error
	)
	if cfg.MarketFile != "" {
		m, err = marketplace.LoadFile(cfg.MarketFile)
		if err != nil {
			return nil, err
		}
	} else {
		m = marketplace.Default()
	}

	for _, v := range venues {
		products := cfg.Books[v.ID]
		if len(products) == 0 {
			continue
		}
		s := exchangebooks.NewSeller(v.ID, v.Source, v.Symbol, cfg.Depth, cfg.BookWaits[v.ID])
		if err := s.Load(ctx, products); err != nil {
			glog.Warningf("%s seller disabled: %v", v.ID, err)
			continue
		}
		m.Append(s)
		glog.Infof("%s seller added for %v", v.ID, products)
	}
	return m, nil
}
