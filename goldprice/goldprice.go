// Package goldprice adapts the goldprice.org spot rates endpoint. The
// endpoint quotes gold in USD per troy ounce alongside currency rates:
//
//	{"ts":1756624800000,"items":[{"curr":"XAU","xauPrice":3450.0,"chgXau":14.2,...},
//	                             {"curr":"CNY","rate":7.2,...}]}
//
// The XAU item carries the ounce price and the day's change, the CNY item
// the USD conversion rate. Items are matched by their curr tag, never by
// position. The request carries a browser User-Agent; like sina's Referer,
// the header is part of the provider contract.
package goldprice

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	fundwatch "github.com/yannyanna/fund-tracker"
)

const (
	addr      = "https://data-asg.goldprice.org/dbXRates/USD"
	userAgent = "Mozilla/5.0"
)

// gramsPerOunce converts the quoted troy ounce price to the CNY-per-gram
// figure the dashboard displays.
var gramsPerOunce = decimal.NewFromFloat(31.1035)

// DisplayName labels the gold spot row; the provider transmits no name.
const DisplayName = "Gold Spot (CNY/g)"

// Source fetches the gold spot price.
type Source struct {
	client *http.Client
	now    func() time.Time // test seam for the observation timestamp
}

// New returns a source using the given client; gold moves slowly enough
// that a multi-minute cache window on the client is appropriate.
func New(client *http.Client) *Source {
	return &Source{client: client, now: time.Now}
}

// Quote fetches the current spot price. The id is ignored: the source
// serves only the fixed gold symbol.
func (s *Source) Quote(string) (fundwatch.RawQuote, error) {
	header := http.Header{}
	header.Set("User-Agent", userAgent)

	body, err := fundwatch.Wget(s.client, addr, header)
	if err != nil {
		return fundwatch.RawQuote{}, err
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return fundwatch.RawQuote{}, fmt.Errorf("gold: cannot decode payload: %w", err)
	}

	xau, err := item(jobj, "XAU")
	if err != nil {
		return fundwatch.RawQuote{}, fmt.Errorf("gold: %w", err)
	}
	cny, err := item(jobj, "CNY")
	if err != nil {
		return fundwatch.RawQuote{}, fmt.Errorf("gold: %w", err)
	}

	ounceUSD, err := field(xau, "xauPrice")
	if err != nil {
		return fundwatch.RawQuote{}, fmt.Errorf("gold: %w", err)
	}
	chgUSD, err := field(xau, "chgXau")
	if err != nil {
		return fundwatch.RawQuote{}, fmt.Errorf("gold: %w", err)
	}
	rate, err := field(cny, "rate")
	if err != nil {
		return fundwatch.RawQuote{}, fmt.Errorf("gold: %w", err)
	}

	r := decimal.NewFromFloat(rate)
	perGram := decimal.NewFromFloat(ounceUSD).Mul(r).DivRound(gramsPerOunce, 4)
	refPerGram := decimal.NewFromFloat(ounceUSD - chgUSD).Mul(r).DivRound(gramsPerOunce, 4)

	return fundwatch.RawQuote{
		ID:        fundwatch.GoldSymbol,
		Name:      DisplayName,
		Price:     perGram.String(),
		Reference: refPerGram.String(),
		// spot gold trades continuously; the observation time is simply
		// now, expressed in the exchange's zone so classification agrees.
		Time: s.now().In(fundwatch.AShareWindow().Location).Format("2006-01-02 15:04"),
	}, nil
}

// item returns the rates entry tagged with the given currency.
func item(jobj any, curr string) (map[string]any, error) {
	jval, err := jsonpath.Get("$.items", jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot pluck items: %w", err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("items is not a list: %v", jval)
	}
	for _, ji := range jlist {
		if m, ok := ji.(map[string]any); ok && m["curr"] == curr {
			return m, nil
		}
	}
	return nil, fmt.Errorf("no %s item in payload", curr)
}

// field extracts a numeric field from a rates item.
func field(m map[string]any, key string) (float64, error) {
	val, ok := m[key].(float64)
	if !ok {
		return 0, fmt.Errorf("field %q is not a number: %v", key, m[key])
	}
	return val, nil
}
