package marketplace

import (
	_ "embed"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase/pricing"
)

//go:embed fixtures/market.json
var defaultMarket []byte

// ====== Формат файла рынка ======

type fileMarket struct {
	Sellers []fileSeller `json:"sellers"`
}

type fileSeller struct {
	ID           string              `json:"id"`
	DeliveryWait string              `json:"delivery_wait"` // "48h"
	Pricing      filePricing         `json:"pricing"`
	Inventory    map[string]fileItem `json:"inventory"`
}

type filePricing struct {
	Kind  string  `json:"kind"` // fixed | scarcity | surcharge
	Param float64 `json:"param"`
}

type fileItem struct {
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// Default — эталонный рынок (asda, budgens, costco). Каждый вызов — новый склад.
func Default() *Market {
	m, err := Parse(defaultMarket)
	if err != nil {
		// встроенный файл проверяется тестами
		panic(err)
	}
	return m
}

// LoadFile читает рынок из JSON-файла.
func LoadFile(path string) (*Market, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read market file")
	}
	m, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "market file %s", path)
	}
	return m, nil
}

func Parse(raw []byte) (*Market, error) {
	var fm fileMarket
	if err := json.Unmarshal(raw, &fm); err != nil {
		return nil, errors.Wrap(err, "decode market")
	}
	sellers := make([]domain.Seller, 0, len(fm.Sellers))
	seen := map[string]struct{}{}
	for i, fs := range fm.Sellers {
		id := strings.TrimSpace(fs.ID)
		if id == "" {
			return nil, errors.Errorf("seller #%d: empty id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, errors.Errorf("seller %s: duplicate id", id)
		}
		seen[id] = struct{}{}

		var wait time.Duration
		if fs.DeliveryWait != "" {
			d, err := time.ParseDuration(fs.DeliveryWait)
			if err != nil {
				return nil, errors.Wrapf(err, "seller %s: delivery_wait", id)
			}
			wait = d
		}
		policy, err := pricing.Parse(fs.Pricing.Kind, fs.Pricing.Param)
		if err != nil {
			return nil, errors.Wrapf(err, "seller %s", id)
		}

		s := NewInventorySeller(id, wait, policy)
		for product, it := range fs.Inventory {
			if it.Quantity < 0 || it.Price < 0 {
				return nil, errors.Errorf("seller %s: %s: negative quantity or price", id, product)
			}
			s.Stock(product, it.Quantity, it.Price)
		}
		sellers = append(sellers, s)
	}
	return NewMarket(sellers...), nil
}
