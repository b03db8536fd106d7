package httpapi

import (
	"context"
	"net/http"
	"sort"

	"marketbuyer/internal/usecase/ranking"
)

// RateResponse — ответ на /api/rate: медиана котировок продавцов с остатком.
type RateResponse struct {
	Product string   `json:"product"`
	Median  float64  `json:"median"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Sellers []string `json:"sellers,omitempty"` // у кого взяли цены
}

// handleRate обрабатывает GET /api/rate?product=Apples
// Распроданные продавцы в расчёт не идут.
func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	ls, err := s.flow.Listings(ctx, r.URL.Query().Get("product"), ranking.NameBestPrice)
	if err != nil {
		writeError(w, err)
		return
	}

	var prices []float64
	var sellers []string
	for _, l := range ls.Listings {
		if l.Quantity <= 0 {
			continue
		}
		prices = append(prices, l.Price)
		sellers = append(sellers, l.Seller)
	}
	if len(prices) == 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no sellers in stock for " + ls.Product})
		return
	}

	sort.Float64s(prices)
	var median float64
	n := len(prices)
	if n%2 == 1 {
		median = prices[n/2]
	} else {
		median = (prices[n/2-1] + prices[n/2]) / 2
	}

	writeJSON(w, http.StatusOK, RateResponse{
		Product: ls.Product,
		Median:  median,
		Min:     prices[0],
		Max:     prices[n-1],
		Sellers: sellers,
	})
}
