package gateadapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"marketbuyer/internal/usecase/orderbook"
)

func TestSymbol(t *testing.T) {
	if got := Symbol(" btc "); got != "BTC_USDT" {
		t.Fatalf("Symbol=%q want %q", got, "BTC_USDT")
	}
}

func TestAsks(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v4/spot/order_book" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("currency_pair")
		if gotQuery != "BTC_USDT" {
			_, _ = w.Write([]byte(`{"label":"INVALID_CURRENCY","message":"Invalid currency"}`))
			return
		}
		_, _ = w.Write([]byte(`{"asks":[["100.5","1.5"],["101","2"]],"bids":[["99","1"]]}`))
	}))
	defer ts.Close()

	c := NewClientAt(ts.URL)
	asks, err := c.Asks(context.Background(), Symbol("btc"), 20)
	if err != nil {
		t.Fatalf("Asks: %v", err)
	}
	want := []orderbook.Level{{Price: 100.5, Qty: 1.5}, {Price: 101, Qty: 2}}
	if diff := pretty.Compare(want, asks); diff != "" {
		t.Fatalf("asks: -want/+got:\n%s", diff)
	}

	if _, err := c.Asks(context.Background(), Symbol("nope"), 20); err == nil {
		t.Fatalf("unknown symbol: expected error")
	}
}
