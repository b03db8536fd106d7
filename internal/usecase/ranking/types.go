package ranking

import (
	"strings"
	"time"
)

// Listing — снимок предложения одного продавца по товару на момент построения списка.
type Listing struct {
	ID           string
	Price        float64       // котировка за 1 единицу
	Index        int           // позиция продавца в рынке, по ней маршрутизируем Sell
	Quantity     float64       // остаток на момент снимка
	DeliveryWait time.Duration // задержка доставки продавца
}

// Strategy — порядок предпочтения продавцов.
// Rank не меняет входной срез и не добавляет/не отбрасывает листинги.
type Strategy interface {
	Name() string
	Rank(in []Listing) []Listing
}

const (
	NameBestPrice = "best_price"
	NameFastest   = "fastest"
	NameLargest   = "largest"
)

// All — все стратегии в порядке отображения.
func All() []Strategy {
	return []Strategy{BestPrice{}, FastestFill{}, MostFill{}}
}

// ByName — стратегия по имени; пустое имя = best_price.
func ByName(name string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameBestPrice, "price":
		return BestPrice{}, true
	case NameFastest, "quick":
		return FastestFill{}, true
	case NameLargest, "most":
		return MostFill{}, true
	default:
		return nil, false
	}
}

func clone(in []Listing) []Listing {
	return append([]Listing(nil), in...)
}
