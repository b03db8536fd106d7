package cli

import (
	"sort"

	"github.com/go-faster/errors"
	ucli "github.com/urfave/cli/v2"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase"
	"marketbuyer/internal/usecase/buyer"
	"marketbuyer/internal/usecase/presenter"
	"marketbuyer/internal/usecase/ranking"
)

// MarketLoader — рынок для одной команды (каждый запуск CLI — свой склад).
type MarketLoader func(c *ucli.Context) (domain.Market, []domain.Product, error)

// NewApp — CLI маркетплейса.
func NewApp(pr presenter.Presenter, load MarketLoader) *ucli.App {
	return &ucli.App{
		Name:  "marketctl",
		Usage: "Query sellers and fill orders across the marketplace",
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "market", Aliases: []string{"m"}, EnvVars: []string{"MARKET_FILE"}, Usage: "market JSON file (default: built-in market)"},
			&ucli.StringSliceFlag{Name: "books", Aliases: []string{"b"}, Usage: "exchange order books to sell from, venue:PRODUCT (e.g. okx:BTC,binance:ETH)"},
		},
		Commands: []*ucli.Command{
			{
				Name:  "sellers",
				Usage: "List sellers and their stock",
				Action: func(c *ucli.Context) error {
					m, _, err := load(c)
					if err != nil {
						return err
					}
					pr.ShowSellers(m.Sellers())
					return nil
				},
			},
			{
				Name:  "best-price",
				Usage: "Show the lowest quote for a product",
				Flags: []ucli.Flag{productFlag()},
				Action: func(c *ucli.Context) error {
					m, _, err := load(c)
					if err != nil {
						return err
					}
					offer, ok, err := buyer.New(m).BestOffer(c.String("product"))
					if err != nil {
						return err
					}
					pr.ShowBestOffer(c.String("product"), offer, ok)
					return nil
				},
			},
			{
				Name:  "listings",
				Usage: "Show sellers ranked by a strategy",
				Flags: []ucli.Flag{productFlag(), strategyFlag()},
				Action: func(c *ucli.Context) error {
					st, err := strategy(c)
					if err != nil {
						return err
					}
					m, _, err := load(c)
					if err != nil {
						return err
					}
					ls, err := buyer.New(m).Preference(st, c.String("product"))
					if err != nil {
						return err
					}
					pr.ShowListings(c.String("product"), st.Name(), ls)
					return nil
				},
			},
			{
				Name:    "fill",
				Aliases: []string{"buy"},
				Usage:   "Buy a quantity walking the ranked sellers",
				Flags: []ucli.Flag{productFlag(), qtyFlag(), strategyFlag(),
					&ucli.BoolFlag{Name: "dry-run", Usage: "estimate from quotes without buying"},
				},
				Action: func(c *ucli.Context) error {
					st, err := strategy(c)
					if err != nil {
						return err
					}
					m, _, err := load(c)
					if err != nil {
						return err
					}
					b := buyer.New(m)
					var res buyer.Result
					if c.Bool("dry-run") {
						res, err = b.Preview(st, c.String("product"), c.Float64("qty"))
					} else {
						res, err = b.Fill(st, c.String("product"), c.Float64("qty"))
					}
					if err != nil {
						return err
					}
					pr.ShowResult(res)
					return nil
				},
			},
			{
				Name:  "compare",
				Usage: "Preview every strategy and rank them",
				Flags: []ucli.Flag{productFlag(), qtyFlag()},
				Action: func(c *ucli.Context) error {
					m, _, err := load(c)
					if err != nil {
						return err
					}
					snaps, err := usecase.CompareStrategies(buyer.New(m), c.String("product"), c.Float64("qty"))
					if err != nil {
						return err
					}
					pr.ShowComparison(c.String("product"), c.Float64("qty"), snaps)
					return nil
				},
			},
			{
				Name:  "shop",
				Usage: "Interactive session: several orders against one market",
				Action: func(c *ucli.Context) error {
					m, products, err := load(c)
					if err != nil {
						return err
					}
					if len(products) == 0 {
						return errors.New("market has no products")
					}
					sort.Strings(products)
					b := buyer.New(m)
					p := NewPrompter(c.App.Reader, c.App.Writer)
					orders := 0
					for {
						order := p.AskOrder(products)
						if order.Quantity <= 0 {
							pr.Warnf("количество 0, заявка пропущена\n")
						} else {
							st, _ := ranking.ByName(order.Strategy)
							res, err := b.Fill(st, order.Product, order.Quantity)
							if err != nil {
								return err
							}
							pr.ShowResult(res)
							orders++
						}
						if !p.Confirm("Ещё заявка?") {
							pr.Infof("Сессия завершена, исполнено заявок: %d\n", orders)
							return nil
						}
					}
				},
			},
		},
	}
}

func productFlag() ucli.Flag {
	return &ucli.StringFlag{Name: "product", Aliases: []string{"p"}, Required: true, Usage: "product name, e.g. Apples"}
}

func qtyFlag() ucli.Flag {
	return &ucli.Float64Flag{Name: "qty", Aliases: []string{"q"}, Required: true, Usage: "quantity to buy"}
}

func strategyFlag() ucli.Flag {
	return &ucli.StringFlag{Name: "strategy", Aliases: []string{"s"}, Value: ranking.NameBestPrice, Usage: "best_price | fastest | largest"}
}

func strategy(c *ucli.Context) (ranking.Strategy, error) {
	st, ok := ranking.ByName(c.String("strategy"))
	if !ok {
		return nil, errors.Errorf("unknown strategy %q (best_price | fastest | largest)", c.String("strategy"))
	}
	return st, nil
}
