package fundwatch

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RawQuote is the tuple a source adapter extracts from a provider response,
// before any trust is placed in it. All fields are kept as the provider's
// text: coercion and plausibility checks belong to Normalize.
type RawQuote struct {
	ID            string // instrument identifier (6-digit fund code, sh/sz symbol, or GoldSymbol)
	Name          string // display name, possibly empty
	Price         string // latest tradable or estimated value
	Reference     string // prior settlement value, the day's baseline
	PercentChange string // provider-reported percent change, possibly bogus
	Time          string // provider-local timestamp, possibly empty
}

// Quote is a normalized snapshot of an instrument's current and reference
// price at a point in time. Quotes are ephemeral: produced per fetch cycle,
// never persisted.
type Quote struct {
	ID        string
	Name      string
	Price     decimal.Decimal // latest tradable or estimated value
	Reference decimal.Decimal // prior settlement, the day's baseline
	Change    Percent         // (Price-Reference)/Reference*100
	Time      string          // provider-local timestamp
	Final     bool            // true for the day's finalized value, false for a running estimate
}

// maxPlausiblePercent rejects provider percent fields above this magnitude.
// A daily fund move of 100% does not happen; values like "812.3" are date
// fragments leaked into the numeric field.
const maxPlausiblePercent = 100

// percentTolerance is the maximum disagreement, in percentage points,
// accepted between the provider-reported percent and the one recomputed
// from the two prices.
const percentTolerance = 0.5

// Normalize converts a raw provider tuple into a Quote, or nil when any
// invariant is violated. The caller must treat nil exactly like an adapter
// failure: the instrument is unavailable for this cycle, previous state is
// left untouched.
//
// Normalize is pure: the same RawQuote always yields the same Quote.
func Normalize(raw RawQuote) *Quote {
	price, ok := parsePrice(raw.Price)
	if !ok {
		return nil
	}
	ref, ok := parsePrice(raw.Reference)
	if !ok {
		// a zero or missing reference price would divide by zero below;
		// short-circuit to "quote unavailable" instead.
		return nil
	}

	computed := price.Sub(ref).Div(ref).Mul(decimal.NewFromInt(100))
	change := Percent(computed.InexactFloat64())

	// Trust the provider's own percentage only when it is plausible and
	// agrees with the prices it came with.
	if reported, err := decimal.NewFromString(strings.TrimSpace(raw.PercentChange)); err == nil {
		p := Percent(reported.InexactFloat64())
		if p < maxPlausiblePercent && p > -maxPlausiblePercent && withinTolerance(p, change) {
			change = p
		}
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		// some providers return prices but no display name
		name = "Fund " + raw.ID
	}

	return &Quote{
		ID:        raw.ID,
		Name:      name,
		Price:     price,
		Reference: ref,
		Change:    change,
		Time:      strings.TrimSpace(raw.Time),
	}
}

func withinTolerance(a, b Percent) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= percentTolerance
}

// parsePrice coerces a provider price field. Empty fields, the "--"
// placeholder, unparseable text and non-positive values all invalidate the
// quote.
func parsePrice(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}
