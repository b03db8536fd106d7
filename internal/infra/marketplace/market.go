package marketplace

import (
	"sync"

	"marketbuyer/internal/domain"
)

// Market — упорядоченный список продавцов. Индекс продавца не меняется после добавления.
type Market struct {
	mu      sync.RWMutex
	sellers []domain.Seller
}

func NewMarket(sellers ...domain.Seller) *Market {
	return &Market{sellers: append([]domain.Seller(nil), sellers...)}
}

// Sellers возвращает копию среза: вызывающий не может переставить продавцов.
func (m *Market) Sellers() []domain.Seller {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Seller(nil), m.sellers...)
}

// Append добавляет продавцов в конец; существующие индексы сохраняются.
func (m *Market) Append(sellers ...domain.Seller) {
	m.mu.Lock()
	m.sellers = append(m.sellers, sellers...)
	m.mu.Unlock()
}

// Products — все товары, которые держит хотя бы один продавец, умеющий перечислить склад.
func (m *Market) Products() []domain.Product {
	seen := map[domain.Product]struct{}{}
	var out []domain.Product
	for _, s := range m.Sellers() {
		st, ok := s.(domain.Stocker)
		if !ok {
			continue
		}
		for p := range st.Products() {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
