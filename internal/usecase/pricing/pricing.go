package pricing

import (
	"strings"

	"github.com/go-faster/errors"
)

// ErrUnknownPolicy — имя политики не распознано.
var ErrUnknownPolicy = errors.New("unknown pricing policy")

// Policy — абстракция ценообразования продавца.
//
// Quote(st)      -> цена одной единицы при текущем остатке.
// Cost(st, qty)  -> сколько стоит продажа qty единиц из остатка st
// (не обязательно qty*Quote: политика может добавить сбор).
type Policy interface {
	Quote(st Stock) float64
	Cost(st Stock, qty float64) float64
	Describe() string
}

// Stock — состояние позиции на складе в момент расчёта.
type Stock struct {
	Base     float64 // базовая цена
	Initial  float64 // начальный остаток
	Quantity float64 // текущий остаток
}

// ===== Фиксированная цена =====

type Fixed struct{}

func (Fixed) Quote(st Stock) float64 { return st.Base }

func (Fixed) Cost(st Stock, qty float64) float64 { return qty * st.Base }

func (Fixed) Describe() string { return "fixed" }

// ===== Дефицит: цена растёт по мере распродажи остатка =====

type Scarcity struct{ Elasticity float64 } // напр. 0.5 = +50% к последней единице

func NewScarcity(elasticity float64) Scarcity { return Scarcity{Elasticity: elasticity} }

func (s Scarcity) Quote(st Stock) float64 {
	if st.Initial <= 0 {
		return st.Base
	}
	sold := 1 - st.Quantity/st.Initial
	if sold < 0 {
		sold = 0
	}
	return st.Base * (1 + s.Elasticity*sold)
}

// Cost — вся партия по цене на момент продажи.
func (s Scarcity) Cost(st Stock, qty float64) float64 { return qty * s.Quote(st) }

func (s Scarcity) Describe() string { return "scarcity" }

// ===== Фиксированный сбор за каждую сделку =====

type Surcharge struct{ Amount float64 } // напр. 2.5 за отгрузку

func NewSurcharge(amount float64) Surcharge { return Surcharge{Amount: amount} }

func (s Surcharge) Quote(st Stock) float64 { return st.Base }

func (s Surcharge) Cost(st Stock, qty float64) float64 {
	if qty <= 0 {
		return 0
	}
	return qty*st.Base + s.Amount
}

func (s Surcharge) Describe() string { return "surcharge" }

// Parse — политика по имени из конфигурации фикстур.
func Parse(kind string, param float64) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "fixed":
		return Fixed{}, nil
	case "scarcity":
		return NewScarcity(param), nil
	case "surcharge":
		return NewSurcharge(param), nil
	default:
		return nil, errors.Errorf("%q: %w", kind, ErrUnknownPolicy)
	}
}
