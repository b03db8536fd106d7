package buyer

import (
	"github.com/google/uuid"

	"marketbuyer/internal/domain"
)

// ====== Чистые типы use-case (не зависят от HTTP и конкретных продавцов) ======

// Status — чем закончилось исполнение заявки.
type Status string

const (
	Filled   Status = "filled"   // остаток спроса 0 (в т.ч. при qty <= 0)
	Partial  Status = "partial"  // что-то купили, но не всё
	Unfilled Status = "unfilled" // не купили ничего
)

// Purchase — квитанция одного вызова Sell с привязкой к продавцу.
type Purchase struct {
	ID        uuid.UUID // uuid.Nil для предпросмотра
	SellerID  string
	Index     int
	Requested float64 // сколько просили у продавца
	domain.Receipt
}

// Result — итог исполнения (или предпросмотра) заявки.
type Result struct {
	Strategy  string
	Product   domain.Product
	Requested float64
	Bought    float64
	Remaining float64
	TotalCost float64
	Receipts  []Purchase
	Status    Status
	DryRun    bool
}

// AveragePrice — средняя цена за единицу, 0 если ничего не куплено.
func (r Result) AveragePrice() float64 {
	if r.Bought <= 0 {
		return 0
	}
	return r.TotalCost / r.Bought
}

// Offer — лучшее предложение по товару.
type Offer struct {
	SellerID string
	Index    int
	Price    float64
}

func statusOf(bought, remaining float64) Status {
	switch {
	case remaining <= 0:
		return Filled
	case bought > 0:
		return Partial
	default:
		return Unfilled
	}
}
