package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/shared/format"
	"marketbuyer/internal/usecase"
	"marketbuyer/internal/usecase/buyer"
	"marketbuyer/internal/usecase/ranking"
)

type CLIPresenter struct {
	out io.Writer
}

func NewCLIPresenter() *CLIPresenter { return &CLIPresenter{out: os.Stdout} }

func NewCLIPresenterTo(w io.Writer) *CLIPresenter { return &CLIPresenter{out: w} }

func (c *CLIPresenter) Infof(format string, args ...any) { fmt.Fprintf(c.out, format, args...) }
func (c *CLIPresenter) Warnf(format string, args ...any) {
	fmt.Fprintf(c.out, "WARN: "+format, args...)
}

func (c *CLIPresenter) table(header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(c.out)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	return t
}

func (c *CLIPresenter) ShowSellers(sellers []domain.Seller) {
	fmt.Fprintln(c.out, "\n=== Продавцы ===")
	t := c.table("#", "Seller", "Delivery", "Product", "Qty", "Price")
	for i, s := range sellers {
		st, ok := s.(domain.Stocker)
		if !ok {
			t.Append([]string{fmt.Sprint(i), s.ID(), s.DeliveryWait().String(), "-", "-", "-"})
			continue
		}
		products := st.Products()
		names := make([]string, 0, len(products))
		for p := range products {
			names = append(names, p)
		}
		sort.Strings(names)
		for _, p := range names {
			price := "-"
			if q, err := s.Quote(p); err == nil {
				price = format.Money(q)
			}
			t.Append([]string{fmt.Sprint(i), s.ID(), s.DeliveryWait().String(), p, format.Qty(products[p].Quantity, 4), price})
		}
	}
	t.Render()
}

func (c *CLIPresenter) ShowListings(product domain.Product, strategy string, ls []ranking.Listing) {
	fmt.Fprintf(c.out, "\n=== %s: порядок %s ===\n", product, strategy)
	if len(ls) == 0 {
		fmt.Fprintln(c.out, "Никто не продаёт этот товар.")
		return
	}
	t := c.table("Rank", "Seller", "Price", "Qty", "Delivery")
	for i, l := range ls {
		t.Append([]string{fmt.Sprint(i + 1), l.ID, format.Money(l.Price), format.Qty(l.Quantity, 4), l.DeliveryWait.String()})
	}
	t.Render()
}

func (c *CLIPresenter) ShowBestOffer(product domain.Product, offer buyer.Offer, ok bool) {
	if !ok {
		fmt.Fprintf(c.out, "%s: предложений нет (0)\n", product)
		return
	}
	fmt.Fprintf(c.out, "%s: лучшая цена %s у %s\n", product, format.Money(offer.Price), offer.SellerID)
}

func (c *CLIPresenter) ShowResult(res buyer.Result) {
	title := "Исполнение"
	if res.DryRun {
		title = "Предпросмотр"
	}
	fmt.Fprintf(c.out, "\n=== %s: %s x%s (%s) ===\n", title, res.Product, format.Qty(res.Requested, 4), res.Strategy)
	if len(res.Receipts) > 0 {
		t := c.table("Seller", "Asked", "Bought", "Cost")
		for _, r := range res.Receipts {
			t.Append([]string{r.SellerID, format.Qty(r.Requested, 4), format.Qty(r.BoughtQuantity, 4), format.Money(r.Cost)})
		}
		t.SetFooter([]string{"", "", format.Qty(res.Bought, 4), format.Money(res.TotalCost)})
		t.Render()
	}
	fmt.Fprintf(c.out, "Итого: %s, куплено %s, средняя цена %s, статус %s\n",
		format.Money(res.TotalCost), format.Qty(res.Bought, 4), format.Money(res.AveragePrice()), res.Status)
	if res.Remaining > 0 {
		fmt.Fprintf(c.out, "Не хватило продавцов: осталось %s\n", format.Qty(res.Remaining, 4))
	}
}

func (c *CLIPresenter) ShowComparison(product domain.Product, qty float64, snaps []usecase.Snap) {
	fmt.Fprintf(c.out, "\n=== Сравнение стратегий: %s x%s ===\n", product, format.Qty(qty, 4))
	if len(snaps) == 0 {
		return
	}
	t := c.table("Strategy", "Bought", "Cost", "Avg price", "Status")
	for _, s := range snaps {
		t.Append([]string{s.Name, format.Qty(s.Res.Bought, 4), format.Money(s.Res.TotalCost), format.Money(s.Res.AveragePrice()), string(s.Res.Status)})
	}
	t.Render()
	fmt.Fprintf(c.out, "Лучший вариант: %s\n", snaps[0].Name)
}
