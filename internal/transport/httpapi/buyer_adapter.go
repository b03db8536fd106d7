package httpapi

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase/buyer"
	"marketbuyer/internal/usecase/ranking"
)

// ErrBadRequest — ошибка во входных данных (HTTP 400).
var ErrBadRequest = errors.New("bad request")

// BuyerAdapter — тонкий адаптер: маппит httpapi.* <-> buyer.* и вызывает use-case.
type BuyerAdapter struct {
	Svc    *buyer.Service
	Market domain.Market
}

func (a *BuyerAdapter) ready(ctx context.Context) error {
	if a == nil || a.Svc == nil || a.Market == nil {
		return errors.New("service is not initialized")
	}
	return ctx.Err()
}

func normalizeProduct(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.Wrap(ErrBadRequest, "product is required")
	}
	return p, nil
}

func strategyOf(name string) (ranking.Strategy, error) {
	st, ok := ranking.ByName(name)
	if !ok {
		return nil, errors.Wrapf(ErrBadRequest, "unknown strategy %q", name)
	}
	return st, nil
}

func (a *BuyerAdapter) Sellers(ctx context.Context) (SellersResponse, error) {
	if err := a.ready(ctx); err != nil {
		return SellersResponse{}, err
	}
	seen := map[string]struct{}{}
	out := SellersResponse{Sellers: []SellerDTO{}, Products: []string{}}
	for _, s := range a.Market.Sellers() {
		dto := SellerDTO{ID: s.ID(), DeliveryWait: s.DeliveryWait().String()}
		if st, ok := s.(domain.Stocker); ok {
			dto.Stock = map[string]StockDTO{}
			for p, inv := range st.Products() {
				entry := StockDTO{Quantity: inv.Quantity}
				if price, err := s.Quote(p); err == nil {
					entry.Price = &price
				}
				dto.Stock[p] = entry
				seen[p] = struct{}{}
			}
		}
		out.Sellers = append(out.Sellers, dto)
	}
	for p := range seen {
		out.Products = append(out.Products, p)
	}
	sort.Strings(out.Products)
	return out, nil
}

func (a *BuyerAdapter) BestPrice(ctx context.Context, product string) (BestPriceResponse, error) {
	if err := a.ready(ctx); err != nil {
		return BestPriceResponse{}, err
	}
	product, err := normalizeProduct(product)
	if err != nil {
		return BestPriceResponse{}, err
	}
	offer, ok, err := a.Svc.BestOffer(product)
	if err != nil {
		return BestPriceResponse{}, err
	}
	resp := BestPriceResponse{Product: product, Found: ok}
	if ok {
		resp.Price, resp.Seller = offer.Price, offer.SellerID
	}
	return resp, nil
}

func (a *BuyerAdapter) Listings(ctx context.Context, product, strategy string) (ListingsResponse, error) {
	if err := a.ready(ctx); err != nil {
		return ListingsResponse{}, err
	}
	product, err := normalizeProduct(product)
	if err != nil {
		return ListingsResponse{}, err
	}
	st, err := strategyOf(strategy)
	if err != nil {
		return ListingsResponse{}, err
	}
	ls, err := a.Svc.Preference(st, product)
	if err != nil {
		return ListingsResponse{}, err
	}
	out := ListingsResponse{Product: product, Strategy: st.Name(), Listings: make([]ListingDTO, 0, len(ls))}
	for _, l := range ls {
		out.Listings = append(out.Listings, ListingDTO{
			Seller:       l.ID,
			Price:        l.Price,
			Quantity:     l.Quantity,
			DeliveryWait: l.DeliveryWait.String(),
		})
	}
	return out, nil
}

func (a *BuyerAdapter) Fill(ctx context.Context, req FillRequest, dryRun bool) (FillResponse, error) {
	if err := a.ready(ctx); err != nil {
		return FillResponse{}, err
	}
	product, err := normalizeProduct(req.Product)
	if err != nil {
		return FillResponse{}, err
	}
	if req.Quantity <= 0 {
		return FillResponse{}, errors.Wrap(ErrBadRequest, "quantity must be > 0")
	}
	st, err := strategyOf(req.Strategy)
	if err != nil {
		return FillResponse{}, err
	}

	var res buyer.Result
	if dryRun {
		res, err = a.Svc.Preview(st, product, req.Quantity)
	} else {
		res, err = a.Svc.Fill(st, product, req.Quantity)
	}
	if err != nil {
		return FillResponse{}, err
	}

	receipts := make([]ReceiptDTO, 0, len(res.Receipts))
	for _, r := range res.Receipts {
		dto := ReceiptDTO{Seller: r.SellerID, Requested: r.Requested, Bought: r.BoughtQuantity, Cost: r.Cost}
		if !dryRun {
			dto.ID = r.ID.String()
		}
		receipts = append(receipts, dto)
	}
	return FillResponse{
		Product:      res.Product,
		Strategy:     res.Strategy,
		Requested:    res.Requested,
		Bought:       res.Bought,
		Remaining:    res.Remaining,
		TotalCost:    res.TotalCost,
		AveragePrice: res.AveragePrice(),
		Status:       string(res.Status),
		DryRun:       res.DryRun,
		Receipts:     receipts,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}
