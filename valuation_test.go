package fundwatch

import (
	"testing"

	"github.com/shopspring/decimal"
)

func quoteOf(id string, price, ref string) *Quote {
	return Normalize(RawQuote{ID: id, Name: "Fund " + id, Price: price, Reference: ref})
}

func TestValue_DayPNL(t *testing.T) {
	// 46531 shares moving from 3.2467 to 3.4470 gain 9317.71 on the day
	l := NewLedger("test")
	if err := l.OpenOrBuy("001186", Q(46531), CNY(2.0), ""); err != nil {
		t.Fatal(err)
	}
	q := quoteOf("001186", "3.4470", "3.2467")
	if q == nil {
		t.Fatal("quote rejected")
	}

	v := Value(l.Position("001186"), q)

	wantDay := decimal.NewFromFloat(9320.1593) // 46531 * 0.2003
	if !approxEqual(v.DayPNL.Amount(), wantDay) {
		t.Errorf("day pnl = %s, want %s", v.DayPNL.Amount(), wantDay)
	}
	if got := v.DayPNL.Amount().Round(2); !got.Equal(decimal.NewFromFloat(9320.16)) {
		t.Errorf("day pnl rounded = %s, want 9320.16", got)
	}

	wantValue := decimal.NewFromFloat(3.4470).Mul(decimal.NewFromInt(46531))
	if !approxEqual(v.MarketValue.Amount(), wantValue) {
		t.Errorf("market value = %s, want %s", v.MarketValue.Amount(), wantValue)
	}

	wantTotal := decimal.NewFromFloat(3.4470 - 2.0).Mul(decimal.NewFromInt(46531))
	if !approxEqual(v.TotalPNL.Amount(), wantTotal) {
		t.Errorf("total pnl = %s, want %s", v.TotalPNL.Amount(), wantTotal)
	}
	if !v.TotalReturn.Equal(Percent(72.35)) {
		t.Errorf("total return = %v, want 72.35", v.TotalReturn)
	}
}

func TestValue_ZeroCostBasis(t *testing.T) {
	// a zero average cost yields a zero return, not an error
	l := NewLedger("test")
	if err := l.OpenOrBuy("001186", Q(100), CNY(0), ""); err != nil {
		t.Fatal(err)
	}
	v := Value(l.Position("001186"), quoteOf("001186", "2.0", "1.9"))
	if !v.TotalReturn.Equal(0) {
		t.Errorf("total return with zero cost = %v, want 0", v.TotalReturn)
	}
}

func TestAggregate(t *testing.T) {
	l := NewLedger("test")
	if err := l.OpenOrBuy("001186", Q(1000), CNY(2.0), ""); err != nil {
		t.Fatal(err)
	}
	if err := l.OpenOrBuy("005827", Q(500), CNY(3.0), ""); err != nil {
		t.Fatal(err)
	}
	quotes := map[string]*Quote{
		"001186": quoteOf("001186", "2.5", "2.4"),
		"005827": quoteOf("005827", "3.3", "3.4"),
	}

	r := Aggregate(l, quotes)

	if len(r.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(r.Items))
	}
	if len(r.Unavailable) != 0 {
		t.Fatalf("unavailable = %v, want none", r.Unavailable)
	}
	wantValue := decimal.NewFromFloat(1000*2.5 + 500*3.3)
	if !approxEqual(r.TotalMarketValue.Amount(), wantValue) {
		t.Errorf("total market value = %s, want %s", r.TotalMarketValue.Amount(), wantValue)
	}
	wantDay := decimal.NewFromFloat(1000*0.1 + 500*-0.1)
	if !approxEqual(r.TotalDayPNL.Amount(), wantDay) {
		t.Errorf("total day pnl = %s, want %s", r.TotalDayPNL.Amount(), wantDay)
	}
}

// Aggregating a single position equals that position's own valuation.
func TestAggregate_SinglePositionRoundTrip(t *testing.T) {
	l := NewLedger("test")
	if err := l.OpenOrBuy("001186", Q(1000), CNY(2.0), ""); err != nil {
		t.Fatal(err)
	}
	q := quoteOf("001186", "2.5", "2.4")

	r := Aggregate(l, map[string]*Quote{"001186": q})
	v := Value(l.Position("001186"), q)

	if !r.TotalMarketValue.Equal(v.MarketValue) {
		t.Errorf("aggregate market value %s != compute %s", r.TotalMarketValue.Amount(), v.MarketValue.Amount())
	}
	if !r.TotalDayPNL.Equal(v.DayPNL) {
		t.Errorf("aggregate day pnl %s != compute %s", r.TotalDayPNL.Amount(), v.DayPNL.Amount())
	}
	if !r.TotalPNL.Equal(v.TotalPNL) {
		t.Errorf("aggregate total pnl %s != compute %s", r.TotalPNL.Amount(), v.TotalPNL.Amount())
	}
}

// A position whose quote did not resolve is excluded from totals and
// reported unavailable; the others are unaffected.
func TestAggregate_UnresolvedQuote(t *testing.T) {
	l := NewLedger("test")
	if err := l.OpenOrBuy("001186", Q(1000), CNY(2.0), ""); err != nil {
		t.Fatal(err)
	}
	if err := l.OpenOrBuy("005827", Q(500), CNY(3.0), ""); err != nil {
		t.Fatal(err)
	}

	// 005827's provider timed out this cycle
	quotes := map[string]*Quote{"001186": quoteOf("001186", "2.5", "2.4")}
	r := Aggregate(l, quotes)

	if len(r.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(r.Items))
	}
	if len(r.Unavailable) != 1 || r.Unavailable[0] != "005827" {
		t.Fatalf("unavailable = %v, want [005827]", r.Unavailable)
	}
	wantValue := decimal.NewFromFloat(1000 * 2.5)
	if !approxEqual(r.TotalMarketValue.Amount(), wantValue) {
		t.Errorf("total market value = %s, want %s", r.TotalMarketValue.Amount(), wantValue)
	}

	// the ledger itself is untouched
	if p := l.Position("005827"); p == nil || !p.Shares.Equal(Q(500)) {
		t.Error("unresolved quote mutated the position")
	}
}
