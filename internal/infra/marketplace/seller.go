package marketplace

import (
	"sync"
	"time"

	"github.com/go-faster/errors"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase/pricing"
)

// ErrNotStocked — Quote по товару, которого у продавца нет.
var ErrNotStocked = errors.New("product not stocked")

type item struct {
	base     float64
	initial  float64
	quantity float64
}

// InventorySeller — продавец со складом в памяти. Реализует domain.Seller.
type InventorySeller struct {
	id     string
	wait   time.Duration
	policy pricing.Policy

	mu    sync.Mutex
	items map[string]*item
}

func NewInventorySeller(id string, wait time.Duration, policy pricing.Policy) *InventorySeller {
	if policy == nil {
		policy = pricing.Fixed{}
	}
	return &InventorySeller{id: id, wait: wait, policy: policy, items: map[string]*item{}}
}

// Stock заводит товар на склад (перезаписывает существующую позицию).
func (s *InventorySeller) Stock(product domain.Product, quantity, price float64) *InventorySeller {
	if quantity < 0 {
		quantity = 0
	}
	s.mu.Lock()
	s.items[product] = &item{base: price, initial: quantity, quantity: quantity}
	s.mu.Unlock()
	return s
}

func (s *InventorySeller) ID() string { return s.id }

func (s *InventorySeller) DeliveryWait() time.Duration { return s.wait }

func (s *InventorySeller) Policy() pricing.Policy { return s.policy }

func (s *InventorySeller) Inventory(product domain.Product) (domain.InventoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[product]
	if !ok {
		return domain.InventoryEntry{}, false
	}
	return domain.InventoryEntry{Quantity: it.quantity}, true
}

func (s *InventorySeller) Quote(product domain.Product) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[product]
	if !ok {
		return 0, errors.Wrapf(ErrNotStocked, "%s: %s", s.id, product)
	}
	return s.policy.Quote(it.stock()), nil
}

// Sell списывает min(qty, остаток); цена считается по остатку до списания.
// Отсутствующий товар или qty <= 0 — пустая квитанция, не ошибка.
func (s *InventorySeller) Sell(product domain.Product, qty float64) (domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[product]
	if !ok || qty <= 0 {
		return domain.Receipt{}, nil
	}
	bought := qty
	if bought > it.quantity {
		bought = it.quantity
	}
	if bought <= 0 {
		return domain.Receipt{}, nil
	}
	cost := s.policy.Cost(it.stock(), bought)
	it.quantity -= bought
	return domain.Receipt{BoughtQuantity: bought, Cost: cost}, nil
}

// Products — товары продавца (для витрины/API).
func (s *InventorySeller) Products() map[domain.Product]domain.InventoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Product]domain.InventoryEntry, len(s.items))
	for p, it := range s.items {
		out[p] = domain.InventoryEntry{Quantity: it.quantity}
	}
	return out
}

func (it *item) stock() pricing.Stock {
	return pricing.Stock{Base: it.base, Initial: it.initial, Quantity: it.quantity}
}
