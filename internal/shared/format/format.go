package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money — сумма с 2 знаками и разделителями тысяч: "1,234,567.89".
func Money(v float64) string {
	return Grouped(v, 2)
}

// Qty — количество без хвостовых нулей, максимум places знаков: "12.5".
func Qty(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

// Grouped — число, округлённое до places знаков, с разделителями тысяч.
func Grouped(v float64, places int32) string {
	s := decimal.NewFromFloat(v).StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	// Форматируем целую часть с разделителями тысяч
	var out []byte
	cnt := 0
	for i := len(intPart) - 1; i >= 0; i-- {
		out = append(out, intPart[i])
		cnt++
		if cnt%3 == 0 && i != 0 {
			out = append(out, ',')
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	if !hasFrac {
		return sign + string(out)
	}
	return sign + string(out) + "." + frac
}
