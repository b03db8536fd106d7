package usecase

import (
	"sort"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase/buyer"
	"marketbuyer/internal/usecase/ranking"
)

// Previewer — то, что умеет оценить исполнение без покупки (Buyer, buyer.Service).
type Previewer interface {
	Preview(s ranking.Strategy, product domain.Product, qty float64) (buyer.Result, error)
}

type Snap struct {
	Name string
	Res  buyer.Result
}

// CompareStrategies — предпросмотр всех стратегий; лучшие первыми:
// больше куплено, затем дешевле, затем по имени.
func CompareStrategies(p Previewer, product domain.Product, qty float64) ([]Snap, error) {
	var snaps []Snap
	for _, st := range ranking.All() {
		res, err := p.Preview(st, product, qty)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, Snap{Name: st.Name(), Res: res})
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		a, b := snaps[i].Res, snaps[j].Res
		if a.Bought != b.Bought {
			return a.Bought > b.Bought
		}
		if a.TotalCost != b.TotalCost {
			return a.TotalCost < b.TotalCost
		}
		return snaps[i].Name < snaps[j].Name
	})
	return snaps, nil
}
