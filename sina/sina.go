// Package sina adapts the hq.sinajs.cn quote endpoint for exchange-traded
// funds. The endpoint serves GBK-encoded javascript, one line per symbol:
//
//	var hq_str_s_sh510300="300ETF,3.853,-0.032,-0.82,3890178,149930887";
//
// fields: name, price, change, percent change, volume, amount. The prior
// settlement is not transmitted; it is derived as price - change. Requests
// without a finance.sina.com.cn Referer are rejected by the provider, so
// the header is part of the contract.
package sina

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	fundwatch "github.com/yannyanna/fund-tracker"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const (
	urlPattern = "https://hq.sinajs.cn/list=s_%s"
	referer    = "https://finance.sina.com.cn"
)

// Source fetches exchange-traded fund quotes.
type Source struct {
	client *http.Client
}

// New returns a source using the given client; the client carries the
// request timeout and the per-cycle response cache.
func New(client *http.Client) *Source { return &Source{client: client} }

// Quote fetches and parses one ETF quote.
func (s *Source) Quote(symbol string) (fundwatch.RawQuote, error) {
	header := http.Header{}
	header.Set("Referer", referer)

	body, err := fundwatch.Wget(s.client, fmt.Sprintf(urlPattern, symbol), header)
	if err != nil {
		return fundwatch.RawQuote{}, err
	}

	// the payload is GBK; a decode failure is equivalent to a network failure.
	utf8, err := simplifiedchinese.GBK.NewDecoder().Bytes(body)
	if err != nil {
		return fundwatch.RawQuote{}, fmt.Errorf("etf %s: cannot decode gbk payload: %w", symbol, err)
	}
	return parse(symbol, string(utf8))
}

// parse extracts the quoted field list from the javascript assignment.
func parse(symbol, text string) (fundwatch.RawQuote, error) {
	open := strings.Index(text, `"`)
	close := strings.LastIndex(text, `"`)
	if open < 0 || close <= open {
		return fundwatch.RawQuote{}, fmt.Errorf("etf %s: no quoted payload in %q", symbol, text)
	}

	fields := strings.Split(text[open+1:close], ",")
	if len(fields) < 4 {
		return fundwatch.RawQuote{}, fmt.Errorf("etf %s: want at least 4 fields, got %d", symbol, len(fields))
	}
	name, price, change, pct := fields[0], fields[1], fields[2], fields[3]

	return fundwatch.RawQuote{
		ID:            symbol,
		Name:          name,
		Price:         price,
		Reference:     reference(price, change),
		PercentChange: pct,
		// the short form carries no timestamp; the quote classifies as an
		// estimate, the conservative label.
	}, nil
}

// reference derives the prior settlement as price - change. Unparseable
// inputs yield an empty reference, which invalidates the quote downstream.
func reference(price, change string) string {
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return ""
	}
	c, err := decimal.NewFromString(strings.TrimSpace(change))
	if err != nil {
		return ""
	}
	return p.Sub(c).String()
}
