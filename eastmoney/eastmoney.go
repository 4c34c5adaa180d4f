// Package eastmoney adapts the fundgz.1234567.com.cn intraday estimate
// endpoint. The endpoint serves one open-end fund per request as JSONP:
//
//	jsonpgz({"fundcode":"001186","name":"富国文体健康股票","jzrq":"2025-08-28",
//	         "dwjz":"3.2467","gsz":"3.4470","gszzl":"6.17","gztime":"2025-08-29 14:58"});
//
// The callback wrapper must be stripped before JSON parsing. All numeric
// fields arrive as strings; dwjz is the previous settlement, gsz the
// running estimate, gszzl the percent change, gztime the estimate time.
package eastmoney

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	fundwatch "github.com/yannyanna/fund-tracker"
)

// the request shape is part of the provider contract, keep it verbatim.
const urlPattern = "http://fundgz.1234567.com.cn/js/%s.js"

// Source fetches open-end fund estimates.
type Source struct {
	client *http.Client
}

// New returns a source using the given client; the client carries the
// request timeout and the per-cycle response cache.
func New(client *http.Client) *Source { return &Source{client: client} }

// Quote fetches and parses one fund's intraday estimate.
func (s *Source) Quote(code string) (fundwatch.RawQuote, error) {
	body, err := fundwatch.Wget(s.client, fmt.Sprintf(urlPattern, code), nil)
	if err != nil {
		return fundwatch.RawQuote{}, err
	}
	return parse(code, body)
}

// parse strips the jsonpgz(...) callback wrapper and decodes the payload.
func parse(code string, body []byte) (fundwatch.RawQuote, error) {
	text := string(body)
	open := strings.Index(text, "{")
	close := strings.LastIndex(text, "}")
	if open < 0 || close < open {
		return fundwatch.RawQuote{}, fmt.Errorf("fund %s: no json object in payload %q", code, truncate(text))
	}

	var payload struct {
		Fundcode string `json:"fundcode"`
		Name     string `json:"name"`
		Dwjz     string `json:"dwjz"`   // previous settlement value
		Gsz      string `json:"gsz"`    // running estimate
		Gszzl    string `json:"gszzl"`  // percent change, occasionally corrupt
		Gztime   string `json:"gztime"` // estimate timestamp
	}
	if err := json.Unmarshal([]byte(text[open:close+1]), &payload); err != nil {
		return fundwatch.RawQuote{}, fmt.Errorf("fund %s: cannot decode payload: %w", code, err)
	}

	return fundwatch.RawQuote{
		ID:            code,
		Name:          payload.Name,
		Price:         payload.Gsz,
		Reference:     payload.Dwjz,
		PercentChange: payload.Gszzl,
		Time:          payload.Gztime,
	}, nil
}

func truncate(s string) string {
	if len(s) > 80 {
		return s[:80] + "..."
	}
	return s
}
