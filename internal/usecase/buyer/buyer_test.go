package buyer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kylelemons/godebug/pretty"

	"marketbuyer/internal/domain"
	"marketbuyer/internal/infra/marketplace"
	"marketbuyer/internal/usecase/ranking"
)

// countingSeller считает вызовы Sell поверх реального продавца.
type countingSeller struct {
	domain.Seller
	sells int
}

func (c *countingSeller) Sell(p domain.Product, qty float64) (domain.Receipt, error) {
	c.sells++
	return c.Seller.Sell(p, qty)
}

// stubSeller — продавец с заданным поведением Quote/Sell.
type stubSeller struct {
	id       string
	qty      float64
	price    float64
	quoteErr error
	sellErr  error
	sell     func(qty float64) domain.Receipt
	sells    int
}

func (s *stubSeller) ID() string                  { return s.id }
func (s *stubSeller) DeliveryWait() time.Duration { return 0 }
func (s *stubSeller) Inventory(domain.Product) (domain.InventoryEntry, bool) {
	return domain.InventoryEntry{Quantity: s.qty}, true
}
func (s *stubSeller) Quote(domain.Product) (float64, error) { return s.price, s.quoteErr }
func (s *stubSeller) Sell(_ domain.Product, qty float64) (domain.Receipt, error) {
	s.sells++
	if s.sellErr != nil {
		return domain.Receipt{}, s.sellErr
	}
	return s.sell(qty), nil
}

func fixture() (*Buyer, []*countingSeller) {
	m := marketplace.Default()
	var wrapped []domain.Seller
	var counters []*countingSeller
	for _, s := range m.Sellers() {
		c := &countingSeller{Seller: s}
		counters = append(counters, c)
		wrapped = append(wrapped, c)
	}
	return New(marketplace.NewMarket(wrapped...)), counters
}

func sells(cs []*countingSeller) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.sells)
	}
	return out
}

func stock(t *testing.T, s domain.Seller, p domain.Product) float64 {
	t.Helper()
	inv, ok := s.Inventory(p)
	if !ok {
		t.Fatalf("%s has no %s", s.ID(), p)
	}
	return inv.Quantity
}

// ====== GetBestPrice ======

func TestGetBestPrice(t *testing.T) {
	b, _ := fixture()
	tests := []struct {
		desc    string
		product string
		want    float64
	}{
		{"all three sellers", "Apples", 4.25},
		{"only two sellers", "Grapes", 21},
		{"only one seller", "Mangosteen", 100},
		{"nobody stocks it", "Kumquat", 0},
	}
	for _, test := range tests {
		got, err := b.GetBestPrice(test.product)
		if err != nil {
			t.Fatalf("TestGetBestPrice(%s): %v", test.desc, err)
		}
		if got != test.want {
			t.Errorf("TestGetBestPrice(%s): got %v, want %v", test.desc, got, test.want)
		}
	}
}

func TestBestOfferDistinguishesNoOffer(t *testing.T) {
	b, _ := fixture()
	if _, ok, err := b.BestOffer("Kumquat"); ok || err != nil {
		t.Fatalf("Kumquat: ok=%v err=%v, want no offer", ok, err)
	}
	offer, ok, err := b.BestOffer("Oranges")
	if err != nil || !ok {
		t.Fatalf("Oranges: ok=%v err=%v", ok, err)
	}
	if diff := pretty.Compare(Offer{SellerID: "costco", Index: 2, Price: 2.95}, offer); diff != "" {
		t.Fatalf("offer: -want/+got:\n%s", diff)
	}
}

// ====== Listings ======

func TestListingsSnapshot(t *testing.T) {
	b, _ := fixture()
	got, err := b.Listings("Grapes")
	if err != nil {
		t.Fatalf("Listings: %v", err)
	}
	want := []ranking.Listing{
		{ID: "asda", Price: 21, Index: 0, Quantity: 15, DeliveryWait: 48 * time.Hour},
		{ID: "budgens", Price: 22.5, Index: 1, Quantity: 25, DeliveryWait: 24 * time.Hour},
	}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Fatalf("listings: -want/+got:\n%s", diff)
	}
	if ls, _ := b.Listings("Kumquat"); len(ls) != 0 {
		t.Fatalf("Kumquat listings=%d want=0", len(ls))
	}
}

func TestPreferenceIdempotent(t *testing.T) {
	b, _ := fixture()
	for _, s := range ranking.All() {
		first, err := b.Preference(s, "Apples")
		if err != nil {
			t.Fatalf("%s: %v", s.Name(), err)
		}
		second, _ := b.Preference(s, "Apples")
		if diff := pretty.Compare(first, second); diff != "" {
			t.Errorf("%s: -first/+second:\n%s", s.Name(), diff)
		}
	}
}

func TestQuoteErrorPropagates(t *testing.T) {
	boom := errors.New("quote service down")
	b := New(marketplace.NewMarket(&stubSeller{id: "x", qty: 1, quoteErr: boom}))
	if _, err := b.Listings("Apples"); !errors.Is(err, boom) {
		t.Fatalf("Listings err=%v want %v", err, boom)
	}
	if _, err := b.GetBestPrice("Apples"); !errors.Is(err, boom) {
		t.Fatalf("GetBestPrice err=%v want %v", err, boom)
	}
	if _, err := b.FillWithBestPrices("Apples", 1); !errors.Is(err, boom) {
		t.Fatalf("Fill err=%v want %v", err, boom)
	}
}

// ====== Fill ======

func TestFillWithBestPrices(t *testing.T) {
	tests := []struct {
		desc      string
		product   string
		qty       float64
		want      float64
		wantSells []int
	}{
		{"cheapest seller covers it", "Apples", 10, 42.5, []int{1, 0, 0}},
		{"spills to next cheapest", "Apples", 50, 85 + 165, []int{1, 1, 0}},
		{"all three sellers", "Apples", 100, 85 + 165 + 312.5, []int{1, 1, 1}},
		{"nobody stocks it", "Kumquat", 10, 0, []int{0, 0, 0}},
		{"zero quantity", "Apples", 0, 0, []int{0, 0, 0}},
		{"negative quantity", "Apples", -5, 0, []int{0, 0, 0}},
	}
	for _, test := range tests {
		b, counters := fixture()
		got, err := b.FillWithBestPrices(test.product, test.qty)
		if err != nil {
			t.Fatalf("TestFillWithBestPrices(%s): %v", test.desc, err)
		}
		if got != test.want {
			t.Errorf("TestFillWithBestPrices(%s): got %v, want %v", test.desc, got, test.want)
		}
		if diff := pretty.Compare(test.wantSells, sells(counters)); diff != "" {
			t.Errorf("TestFillWithBestPrices(%s): sell calls -want/+got:\n%s", test.desc, diff)
		}
	}
}

func TestFillLeavesUntouchedStock(t *testing.T) {
	b, counters := fixture()
	if _, err := b.FillWithBestPrices("Apples", 10); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if got := stock(t, counters[0], "Apples"); got != 10 {
		t.Errorf("asda apples=%v want=10", got)
	}
	if got := stock(t, counters[1], "Apples"); got != 30 {
		t.Errorf("budgens apples=%v want=30", got)
	}
	if got := stock(t, counters[2], "Apples"); got != 60 {
		t.Errorf("costco apples=%v want=60", got)
	}
}

func TestFillResultPartial(t *testing.T) {
	b, _ := fixture()
	res, err := b.Fill(ranking.BestPrice{}, "Apples", 200)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if res.Status != Partial || res.Bought != 110 || res.Remaining != 90 || res.TotalCost != 625 {
		t.Fatalf("result=%+v", res)
	}
	var order []string
	for _, r := range res.Receipts {
		if r.ID == uuid.Nil {
			t.Errorf("receipt from %s has no id", r.SellerID)
		}
		order = append(order, r.SellerID)
	}
	if diff := pretty.Compare([]string{"asda", "budgens", "costco"}, order); diff != "" {
		t.Fatalf("receipt order: -want/+got:\n%s", diff)
	}
	if res.Receipts[1].Requested != 180 {
		t.Fatalf("second seller asked for %v want 180", res.Receipts[1].Requested)
	}
	if res.AveragePrice() != 625.0/110 {
		t.Fatalf("avg=%v", res.AveragePrice())
	}
}

func TestFillStatuses(t *testing.T) {
	b, _ := fixture()
	if res, _ := b.Fill(ranking.BestPrice{}, "Apples", 10); res.Status != Filled {
		t.Errorf("10 apples: status=%s want filled", res.Status)
	}
	if res, _ := b.Fill(ranking.BestPrice{}, "Kumquat", 10); res.Status != Unfilled || res.Remaining != 10 {
		t.Errorf("kumquat: %+v", res)
	}
	if res, _ := b.Fill(ranking.BestPrice{}, "Apples", 0); res.Status != Filled || len(res.Receipts) != 0 {
		t.Errorf("zero qty: %+v", res)
	}
}

func TestFillWithLargestSellers(t *testing.T) {
	b, counters := fixture()
	got, err := b.FillWithLargestSellers("Apples", 50)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if got != 312.5 {
		t.Fatalf("got %v want 312.5", got)
	}
	if diff := pretty.Compare([]int{0, 0, 1}, sells(counters)); diff != "" {
		t.Fatalf("sell calls -want/+got:\n%s", diff)
	}
}

func TestFillWithLargestSellersTieUsesCheaper(t *testing.T) {
	dear := marketplace.NewInventorySeller("dear", 0, nil).Stock("Pears", 10, 3)
	cheap := marketplace.NewInventorySeller("cheap", 0, nil).Stock("Pears", 10, 2)
	b := New(marketplace.NewMarket(dear, cheap))

	got, err := b.FillWithLargestSellers("Pears", 5)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if got != 10 {
		t.Fatalf("got %v want 10 (5 x 2 from cheap)", got)
	}
	if inv, _ := dear.Inventory("Pears"); inv.Quantity != 10 {
		t.Fatalf("dear seller was used: %+v", inv)
	}
}

func TestQuicklyFill(t *testing.T) {
	b, counters := fixture()
	got, err := b.QuicklyFill("Apples", 40)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	// budgens (24h) 30 x 5.50, затем asda (48h) 10 x 4.25
	if got != 165+42.5 {
		t.Fatalf("got %v want 207.5", got)
	}
	if diff := pretty.Compare([]int{1, 1, 0}, sells(counters)); diff != "" {
		t.Fatalf("sell calls -want/+got:\n%s", diff)
	}
}

// ====== Purchase ======

func TestPurchaseRoutesByIndexNotSnapshot(t *testing.T) {
	b, counters := fixture()
	prefs, err := b.PreferBestPrice("Apples")
	if err != nil {
		t.Fatalf("PreferBestPrice: %v", err)
	}
	// склад asda распродан после снимка
	if _, err := counters[0].Seller.Sell("Apples", 20); err != nil {
		t.Fatalf("Sell: %v", err)
	}
	res, err := b.Purchase(prefs, "Apples", 10)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if res.TotalCost != 55 || len(res.Receipts) != 2 || res.Receipts[0].BoughtQuantity != 0 {
		t.Fatalf("result=%+v", res)
	}
	if diff := pretty.Compare([]int{1, 1, 0}, sells(counters)); diff != "" {
		t.Fatalf("sell calls -want/+got:\n%s", diff)
	}
}

func TestPurchaseDoesNotMutatePreference(t *testing.T) {
	b, _ := fixture()
	prefs, _ := b.PreferBestPrice("Apples")
	before := append([]ranking.Listing(nil), prefs...)
	if _, err := b.Purchase(prefs, "Apples", 100); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if diff := pretty.Compare(before, prefs); diff != "" {
		t.Fatalf("preference mutated: -want/+got:\n%s", diff)
	}
}

func TestPurchaseClampsOverDelivery(t *testing.T) {
	greedy := &stubSeller{id: "greedy", qty: 100, price: 1, sell: func(qty float64) domain.Receipt {
		return domain.Receipt{BoughtQuantity: qty * 2, Cost: qty * 2}
	}}
	next := &stubSeller{id: "next", qty: 100, price: 2, sell: func(qty float64) domain.Receipt {
		return domain.Receipt{BoughtQuantity: qty, Cost: qty * 2}
	}}
	b := New(marketplace.NewMarket(greedy, next))
	res, err := b.Fill(ranking.BestPrice{}, "Apples", 5)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if res.Remaining != 0 || res.TotalCost != 10 || next.sells != 0 {
		t.Fatalf("result=%+v next.sells=%d", res, next.sells)
	}
}

func TestPurchaseSellErrorPropagates(t *testing.T) {
	boom := errors.New("warehouse offline")
	ok := &stubSeller{id: "ok", qty: 3, price: 1, sell: func(qty float64) domain.Receipt {
		return domain.Receipt{BoughtQuantity: 3, Cost: 3}
	}}
	broken := &stubSeller{id: "broken", qty: 10, price: 2, sellErr: boom}
	after := &stubSeller{id: "after", qty: 10, price: 3, sell: func(qty float64) domain.Receipt {
		return domain.Receipt{BoughtQuantity: qty, Cost: qty * 3}
	}}
	b := New(marketplace.NewMarket(ok, broken, after))

	res, err := b.Fill(ranking.BestPrice{}, "Apples", 10)
	if err != boom {
		t.Fatalf("err=%v want %v unchanged", err, boom)
	}
	if len(res.Receipts) != 1 || res.TotalCost != 3 || res.Remaining != 7 || res.Status != Partial {
		t.Fatalf("result=%+v", res)
	}
	if after.sells != 0 {
		t.Fatalf("seller after failure was called")
	}
}

func TestPurchaseUnknownIndex(t *testing.T) {
	b, _ := fixture()
	_, err := b.Purchase([]ranking.Listing{{ID: "ghost", Index: 7}}, "Apples", 1)
	if !errors.Is(err, ErrUnknownSeller) {
		t.Fatalf("err=%v want ErrUnknownSeller", err)
	}
}

// ====== Preview / Service ======

func TestPreviewDoesNotSell(t *testing.T) {
	b, counters := fixture()
	res, err := b.Preview(ranking.BestPrice{}, "Apples", 50)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !res.DryRun || res.TotalCost != 250 || res.Status != Filled {
		t.Fatalf("preview=%+v", res)
	}
	if diff := pretty.Compare([]int{0, 0, 0}, sells(counters)); diff != "" {
		t.Fatalf("preview called Sell: %s", diff)
	}
	if res, _ := b.Preview(ranking.BestPrice{}, "Apples", 500); res.Status != Partial || res.Remaining != 390 {
		t.Fatalf("oversized preview=%+v", res)
	}
}

func TestServiceSerializesFills(t *testing.T) {
	svc := NewService(marketplace.Default())
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total float64
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Fill(ranking.BestPrice{}, "Apples", 10)
			if err != nil {
				t.Errorf("Fill: %v", err)
				return
			}
			mu.Lock()
			total += res.TotalCost
			mu.Unlock()
		}()
	}
	wg.Wait()
	// первые 100 яблок по возрастанию цены
	if total != 562.5 {
		t.Fatalf("total=%v want 562.5", total)
	}
	// распроданный продавец остаётся в выдаче: товар есть в его складе
	offer, ok, _ := svc.BestOffer("Apples")
	if !ok || offer.SellerID != "asda" {
		t.Fatalf("best offer after fills=%+v", offer)
	}
	prefs, _ := svc.Preference(ranking.BestPrice{}, "Apples")
	if len(prefs) != 3 || prefs[0].Quantity != 0 || prefs[2].Quantity != 10 {
		t.Fatalf("listings after fills=%+v", prefs)
	}
}
