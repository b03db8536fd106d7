package buyer

import (
	"math"

	"github.com/go-faster/errors"
	"github.com/golang/glog"
	"github.com/google/uuid"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase/ranking"
)

// ErrUnknownSeller — листинг ссылается на индекс, которого нет в рынке.
var ErrUnknownSeller = errors.New("listing refers to unknown seller")

// Purchase идёт по списку предпочтения строго по порядку: одна попытка Sell
// на листинг, пока список не кончится или спрос не будет закрыт.
// Sell вызывается по индексу продавца, снимок цены/остатка не используется.
// Ошибка продавца прерывает проход и возвращается как есть вместе с уже
// собранными квитанциями.
func (b *Buyer) Purchase(prefs []ranking.Listing, product domain.Product, qty float64) (Result, error) {
	queue := append([]ranking.Listing(nil), prefs...)
	sellers := b.market.Sellers()

	res := Result{Product: product, Requested: qty}
	remaining := qty
	for len(queue) > 0 && remaining > 0 {
		l := queue[0]
		queue = queue[1:]

		if l.Index < 0 || l.Index >= len(sellers) {
			res.finish(remaining)
			return res, errors.Wrapf(ErrUnknownSeller, "%s at #%d", l.ID, l.Index)
		}
		r, err := sellers[l.Index].Sell(product, remaining)
		if err != nil {
			res.finish(remaining)
			return res, err
		}
		glog.V(2).Infof("buyer: %s x%.4f at %s: bought=%.4f cost=%.4f", product, remaining, l.ID, r.BoughtQuantity, r.Cost)

		res.Receipts = append(res.Receipts, Purchase{
			ID:        uuid.New(),
			SellerID:  l.ID,
			Index:     l.Index,
			Requested: remaining,
			Receipt:   r,
		})
		remaining = math.Max(0, remaining-r.BoughtQuantity)
	}
	res.finish(remaining)
	return res, nil
}

// Preview — оценка исполнения по снимку листингов без вызова Sell.
// Цена берётся из котировки: сборы и динамика цены не учитываются.
func (b *Buyer) Preview(s ranking.Strategy, product domain.Product, qty float64) (Result, error) {
	prefs, err := b.Preference(s, product)
	if err != nil {
		return Result{Strategy: s.Name(), Product: product, Requested: qty, DryRun: true}, err
	}
	res := Result{Strategy: s.Name(), Product: product, Requested: qty, DryRun: true}
	remaining := qty
	for _, l := range prefs {
		if remaining <= 0 {
			break
		}
		take := math.Min(remaining, l.Quantity)
		if take < 0 {
			take = 0
		}
		res.Receipts = append(res.Receipts, Purchase{
			SellerID:  l.ID,
			Index:     l.Index,
			Requested: remaining,
			Receipt:   domain.Receipt{BoughtQuantity: take, Cost: take * l.Price},
		})
		remaining -= take
	}
	res.finish(math.Max(0, remaining))
	return res, nil
}

func (r *Result) finish(remaining float64) {
	r.Bought, r.TotalCost = 0, 0
	for _, p := range r.Receipts {
		r.Bought += p.BoughtQuantity
		r.TotalCost += p.Cost
	}
	if r.Requested > 0 {
		r.Remaining = remaining
	}
	r.Status = statusOf(r.Bought, r.Remaining)
}
