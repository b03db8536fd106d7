package ranking

import (
	"testing"
	"time"

	"github.com/kylelemons/godebug/pretty"
)

func sample() []Listing {
	return []Listing{
		{ID: "asda", Price: 4.25, Index: 0, Quantity: 20, DeliveryWait: 48 * time.Hour},
		{ID: "budgens", Price: 5.5, Index: 1, Quantity: 30, DeliveryWait: 24 * time.Hour},
		{ID: "costco", Price: 6.25, Index: 2, Quantity: 60, DeliveryWait: 120 * time.Hour},
		{ID: "lidl", Price: 4.25, Index: 3, Quantity: 30, DeliveryWait: 24 * time.Hour},
	}
}

func ids(ls []Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestRankOrder(t *testing.T) {
	tests := []struct {
		desc string
		s    Strategy
		want []string
	}{
		{"cheapest first, ties keep market order", BestPrice{}, []string{"asda", "lidl", "budgens", "costco"}},
		{"shortest delivery first", FastestFill{}, []string{"budgens", "lidl", "asda", "costco"}},
		{"largest first, cheaper wins a tie", MostFill{}, []string{"costco", "lidl", "budgens", "asda"}},
	}
	for _, test := range tests {
		got := ids(test.s.Rank(sample()))
		if diff := pretty.Compare(test.want, got); diff != "" {
			t.Errorf("TestRankOrder(%s): -want/+got:\n%s", test.desc, diff)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := sample()
	before := ids(in)
	for _, s := range All() {
		out := s.Rank(in)
		if len(out) != len(in) {
			t.Fatalf("%s: len=%d want=%d", s.Name(), len(out), len(in))
		}
		if diff := pretty.Compare(before, ids(in)); diff != "" {
			t.Fatalf("%s mutated input: -want/+got:\n%s", s.Name(), diff)
		}
	}
}

func TestRankIdempotent(t *testing.T) {
	for _, s := range All() {
		a := s.Rank(sample())
		b := s.Rank(sample())
		if diff := pretty.Compare(a, b); diff != "" {
			t.Errorf("%s not stable across calls: -first/+second:\n%s", s.Name(), diff)
		}
	}
}

func TestRankEmpty(t *testing.T) {
	for _, s := range All() {
		if out := s.Rank(nil); len(out) != 0 {
			t.Errorf("%s: got %d listings from empty input", s.Name(), len(out))
		}
	}
}

func TestByName(t *testing.T) {
	cases := map[string]string{
		"":           NameBestPrice,
		"best_price": NameBestPrice,
		"FASTEST":    NameFastest,
		" largest ":  NameLargest,
	}
	for in, want := range cases {
		s, ok := ByName(in)
		if !ok {
			t.Fatalf("ByName(%q) not found", in)
		}
		if s.Name() != want {
			t.Fatalf("ByName(%q)=%s want=%s", in, s.Name(), want)
		}
	}
	if _, ok := ByName("cheapest_shipping"); ok {
		t.Fatalf("unexpected strategy for unknown name")
	}
}
