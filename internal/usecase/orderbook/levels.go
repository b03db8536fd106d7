package orderbook

import (
	"math"
	"sort"
	"strconv"
)

type Level struct {
	Price float64
	Qty   float64
}

// ParseLevel — уровень из строкового ответа биржи; ok=false для мусора и непозитивных значений.
func ParseLevel(price, qty string) (Level, bool) {
	p, err1 := strconv.ParseFloat(price, 64)
	q, err2 := strconv.ParseFloat(qty, 64)
	if err1 != nil || err2 != nil || p <= 0 || q <= 0 || !isFinite(p) || !isFinite(q) {
		return Level{}, false
	}
	return Level{Price: p, Qty: q}, true
}

// Asks — валидные уровни по возрастанию цены (новый срез).
func Asks(xs []Level) []Level {
	out := make([]Level, 0, len(xs))
	for _, l := range xs {
		if l.Price > 0 && l.Qty > 0 && isFinite(l.Price) && isFinite(l.Qty) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

// Depth — суммарный объём уровней.
func Depth(xs []Level) float64 {
	var sum float64
	for _, l := range xs {
		sum += l.Qty
	}
	return sum
}

// Take — покупаем qty по лучшим askам (уровни отсортированы по возрастанию).
// Возвращаем:
//
//	bought — сколько удалось купить (<= qty и <= Depth),
//	cost   — сколько заплатили,
//	rest   — оставшиеся уровни (входной срез не меняется).
func Take(asks []Level, qty float64) (bought, cost float64, rest []Level) {
	rest = append([]Level(nil), asks...)
	for qty-bought > 0 && len(rest) > 0 {
		top := &rest[0]
		take := math.Min(top.Qty, qty-bought)
		bought += take
		cost += take * top.Price
		top.Qty -= take
		if top.Qty <= 1e-12 {
			rest = rest[1:]
		}
	}
	return bought, cost, rest
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// ParseRows — уровни из строк [[price, qty, ...], ...] ответа биржи.
// limit > 0 ограничивает число строк (для бирж без параметра глубины).
func ParseRows(rows [][]string, limit int) []Level {
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	out := make([]Level, 0, len(rows))
	for _, r := range rows {
		if len(r) < 2 {
			continue
		}
		if l, ok := ParseLevel(r[0], r[1]); ok {
			out = append(out, l)
		}
	}
	return out
}

// FloatRows — то же для числовых строк (HTX отдаёт числа, а не строки).
func FloatRows(rows [][]float64, limit int) []Level {
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	out := make([]Level, 0, len(rows))
	for _, r := range rows {
		if len(r) < 2 || r[0] <= 0 || r[1] <= 0 || !isFinite(r[0]) || !isFinite(r[1]) {
			continue
		}
		out = append(out, Level{Price: r[0], Qty: r[1]})
	}
	return out
}
