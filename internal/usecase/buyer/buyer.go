package buyer

import (
	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase/ranking"
)

// Buyer ранжирует продавцов одного рынка и покупает по ранжированию.
// Между вызовами состояния не хранит.
type Buyer struct {
	market domain.Market
}

func New(market domain.Market) *Buyer {
	return &Buyer{market: market}
}

// Listings — снимок предложений всех продавцов, у которых есть товар.
// Порядок не гарантируется; продавцы без товара не попадают в список.
func (b *Buyer) Listings(product domain.Product) ([]ranking.Listing, error) {
	var out []ranking.Listing
	for i, s := range b.market.Sellers() {
		inv, ok := s.Inventory(product)
		if !ok {
			continue
		}
		price, err := s.Quote(product)
		if err != nil {
			return nil, err
		}
		out = append(out, ranking.Listing{
			ID:           s.ID(),
			Price:        price,
			Index:        i,
			Quantity:     inv.Quantity,
			DeliveryWait: s.DeliveryWait(),
		})
	}
	return out, nil
}

// Preference — список предпочтения по стратегии.
func (b *Buyer) Preference(s ranking.Strategy, product domain.Product) ([]ranking.Listing, error) {
	ls, err := b.Listings(product)
	if err != nil {
		return nil, err
	}
	return s.Rank(ls), nil
}

func (b *Buyer) PreferBestPrice(product domain.Product) ([]ranking.Listing, error) {
	return b.Preference(ranking.BestPrice{}, product)
}

func (b *Buyer) PreferFastest(product domain.Product) ([]ranking.Listing, error) {
	return b.Preference(ranking.FastestFill{}, product)
}

func (b *Buyer) PreferLargest(product domain.Product) ([]ranking.Listing, error) {
	return b.Preference(ranking.MostFill{}, product)
}

// BestOffer — минимальная котировка среди продавцов с товаром.
// ok=false, если товара нет ни у кого.
func (b *Buyer) BestOffer(product domain.Product) (Offer, bool, error) {
	var best Offer
	found := false
	for i, s := range b.market.Sellers() {
		if _, ok := s.Inventory(product); !ok {
			continue
		}
		price, err := s.Quote(product)
		if err != nil {
			return Offer{}, false, err
		}
		if !found || price < best.Price {
			best = Offer{SellerID: s.ID(), Index: i, Price: price}
			found = true
		}
	}
	return best, found, nil
}

// GetBestPrice — лучшая цена или 0, если товара нет ни у кого.
// 0 неоднозначен (бесплатный товар тоже даст 0); различать — через BestOffer.
func (b *Buyer) GetBestPrice(product domain.Product) (float64, error) {
	offer, _, err := b.BestOffer(product)
	if err != nil {
		return 0, err
	}
	return offer.Price, nil
}

// Fill — ранжирование по стратегии и исполнение.
func (b *Buyer) Fill(s ranking.Strategy, product domain.Product, qty float64) (Result, error) {
	prefs, err := b.Preference(s, product)
	if err != nil {
		return Result{Strategy: s.Name(), Product: product, Requested: qty}, err
	}
	res, err := b.Purchase(prefs, product, qty)
	res.Strategy = s.Name()
	return res, err
}

// FillWithBestPrices — сначала самые дешёвые продавцы; вернёт суммарную стоимость.
func (b *Buyer) FillWithBestPrices(product domain.Product, qty float64) (float64, error) {
	res, err := b.Fill(ranking.BestPrice{}, product, qty)
	return res.TotalCost, err
}

// FillWithLargestSellers — сначала продавцы с наибольшим остатком (при равенстве — дешевле).
func (b *Buyer) FillWithLargestSellers(product domain.Product, qty float64) (float64, error) {
	res, err := b.Fill(ranking.MostFill{}, product, qty)
	return res.TotalCost, err
}

// QuicklyFill — сначала продавцы с самой быстрой доставкой.
func (b *Buyer) QuicklyFill(product domain.Product, qty float64) (float64, error) {
	res, err := b.Fill(ranking.FastestFill{}, product, qty)
	return res.TotalCost, err
}
