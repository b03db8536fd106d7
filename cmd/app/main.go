package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	ucli "github.com/urfave/cli/v2"

	"marketbuyer/internal/app/marketsetup"
	"marketbuyer/internal/config"
	"marketbuyer/internal/domain"
	"marketbuyer/internal/transport/cli"
)

// loadMarket — склад для команды: env + флаги CLI поверх него.
func loadMarket(c *ucli.Context) (domain.Market, []domain.Product, error) {
	cfg := config.Load()
	if c.IsSet("market") {
		cfg.MarketFile = c.String("market")
	}
	if c.IsSet("books") {
		books, err := config.ParseBooks(c.StringSlice("books"))
		if err != nil {
			return nil, nil, err
		}
		// флаг заменяет <VENUE>_PRODUCTS целиком
		cfg.Books = books
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	m, err := marketsetup.Build(c.Context, cfg)
	if err != nil {
		return nil, nil, err
	}
	return m, m.Products(), nil
}

func main() {
	// glog читает свои флаги из стандартного flag; остальное разбирает urfave/cli
	_ = flag.CommandLine.Parse([]string{"-logtostderr"})
	defer glog.Flush()

	app := cli.NewApp(cli.NewCLIPresenter(), loadMarket)
	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Ошибка выполнения: %v\n", err)
		glog.Flush()
		os.Exit(1)
	}
}
