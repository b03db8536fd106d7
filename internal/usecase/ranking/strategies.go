package ranking

import "sort"

type BestPrice struct{}

func (BestPrice) Name() string { return NameBestPrice }

// Rank — по возрастанию цены; при равенстве сохраняется порядок рынка.
func (BestPrice) Rank(in []Listing) []Listing {
	out := clone(in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

type FastestFill struct{}

func (FastestFill) Name() string { return NameFastest }

// Rank — по возрастанию задержки доставки.
func (FastestFill) Rank(in []Listing) []Listing {
	out := clone(in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeliveryWait < out[j].DeliveryWait })
	return out
}

type MostFill struct{}

func (MostFill) Name() string { return NameLargest }

// Rank — крупнейший остаток первым; при равном остатке дешевле первым.
func (MostFill) Rank(in []Listing) []Listing {
	out := clone(in)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantity == out[j].Quantity {
			return out[i].Price < out[j].Price
		}
		return out[i].Quantity > out[j].Quantity
	})
	return out
}
