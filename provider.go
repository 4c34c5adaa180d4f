package fundwatch

import (
	"fmt"
	"strings"
)

// GoldSymbol is the fixed instrument identifier for gold spot exposure.
const GoldSymbol = "XAUCNY"

// Provider identifies a quote source over a closed set. Dispatch happens
// through a Registry lookup, never by matching on human-readable labels.
type Provider int

const (
	// Eastmoney serves open-end fund intraday estimates (JSONP wire format).
	Eastmoney Provider = iota
	// Sina serves exchange-traded fund quotes (GBK delimited text).
	Sina
	// GoldPrice serves the gold spot price (JSON).
	GoldPrice
)

func (p Provider) String() string {
	switch p {
	case Eastmoney:
		return "eastmoney"
	case Sina:
		return "sina"
	case GoldPrice:
		return "goldprice"
	default:
		return "unknown"
	}
}

// ParseProvider parses a provider name into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch s {
	case "eastmoney":
		return Eastmoney, nil
	case "sina":
		return Sina, nil
	case "goldprice":
		return GoldPrice, nil
	default:
		return 0, fmt.Errorf("unknown provider: %q", s)
	}
}

// ProviderFor selects the provider responsible for an instrument from the
// shape of its identifier: the fixed gold symbol, exchange-prefixed ETF
// symbols (sh/sz), and 6-digit open-end fund codes.
func ProviderFor(id string) Provider {
	switch {
	case id == GoldSymbol:
		return GoldPrice
	case strings.HasPrefix(id, "sh"), strings.HasPrefix(id, "sz"):
		return Sina
	default:
		return Eastmoney
	}
}

// Source is a quote source adapter: it knows how to build the provider's
// request and parse the provider's wire format into a RawQuote. Sources are
// read-only and idempotent; any failure means "no quote available for this
// instrument on this cycle", nothing more.
type Source interface {
	Quote(id string) (RawQuote, error)
}

// Registry maps each provider of the closed set to its source adapter.
type Registry map[Provider]Source

// Quote dispatches to the adapter responsible for the instrument.
func (r Registry) Quote(id string) (RawQuote, error) {
	p := ProviderFor(id)
	src, ok := r[p]
	if ok {
		return src.Quote(id)
	}
	return RawQuote{}, fmt.Errorf("no source registered for provider %s", p)
}
