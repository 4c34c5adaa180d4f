package fundwatch

import "github.com/shopspring/decimal"

// Valuation combines one Position with its latest Quote.
type Valuation struct {
	Position *Position
	Quote    *Quote

	MarketValue Money   // shares * current price
	DayPNL      Money   // shares * (current - reference), the day's move
	TotalPNL    Money   // shares * (current - average cost), since inception
	TotalReturn Percent // (current - average cost) / average cost * 100
}

// Value computes the valuation of a position against a quote. The day P&L
// is always measured against the quote's reference price: the arithmetic
// is identical whether the quote is an estimate or final.
func Value(p *Position, q *Quote) Valuation {
	price := CNY(q.Price)
	ref := CNY(q.Reference)

	v := Valuation{
		Position:    p,
		Quote:       q,
		MarketValue: price.Mul(p.Shares),
		DayPNL:      price.Sub(ref).Mul(p.Shares),
		TotalPNL:    price.Sub(p.AverageCost).Mul(p.Shares),
	}
	if p.AverageCost.IsPositive() {
		ret := q.Price.Sub(p.AverageCost.Amount()).
			Div(p.AverageCost.Amount()).
			Mul(decimal.NewFromInt(100))
		v.TotalReturn = Percent(ret.InexactFloat64())
	}
	return v
}

// Report is the portfolio view of one user for one refresh cycle. It is
// derived, held only in memory, and recomputed on every cycle.
type Report struct {
	User string
	Date Date

	TotalMarketValue Money
	TotalDayPNL      Money
	TotalPNL         Money
	DayReturn        Percent // day P&L relative to the day's opening value

	Items       []Valuation
	Unavailable []string // instruments with no resolvable quote this cycle
}

// Aggregate sums valuations across all positions of a ledger. Positions
// without a resolvable quote this cycle are listed as unavailable and
// excluded from the totals; they stay untouched in the ledger so the next
// cycle can retry.
func Aggregate(l *Ledger, quotes map[string]*Quote) *Report {
	r := &Report{
		User:             l.User(),
		Date:             Today(),
		TotalMarketValue: CNY(0),
		TotalDayPNL:      CNY(0),
		TotalPNL:         CNY(0),
	}

	for _, p := range l.Positions() {
		q, ok := quotes[p.ID]
		if !ok || q == nil {
			r.Unavailable = append(r.Unavailable, p.ID)
			continue
		}
		v := Value(p, q)
		r.Items = append(r.Items, v)
		r.TotalMarketValue = r.TotalMarketValue.Add(v.MarketValue)
		r.TotalDayPNL = r.TotalDayPNL.Add(v.DayPNL)
		r.TotalPNL = r.TotalPNL.Add(v.TotalPNL)
	}

	// day return over the day's opening value (today's value minus today's move)
	base := r.TotalMarketValue.Sub(r.TotalDayPNL)
	if base.IsPositive() {
		ret := r.TotalDayPNL.Amount().Div(base.Amount()).Mul(decimal.NewFromInt(100))
		r.DayReturn = Percent(ret.InexactFloat64())
	}
	return r
}
