package buyer

import (
	"sync"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase/ranking"
)

// Service — Buyer для конкурентных вызывающих (HTTP): операции над одним
// рынком выполняются по очереди, исполнение заявки не перемежается с чужим.
type Service struct {
	mu    sync.Mutex
	buyer *Buyer
}

func NewService(market domain.Market) *Service {
	return &Service{buyer: New(market)}
}

func (s *Service) Fill(st ranking.Strategy, product domain.Product, qty float64) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buyer.Fill(st, product, qty)
}

func (s *Service) Preview(st ranking.Strategy, product domain.Product, qty float64) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buyer.Preview(st, product, qty)
}

func (s *Service) Preference(st ranking.Strategy, product domain.Product) ([]ranking.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buyer.Preference(st, product)
}

func (s *Service) BestOffer(product domain.Product) (Offer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buyer.BestOffer(product)
}
