package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	fundwatch "github.com/yannyanna/fund-tracker"
)

func sampleReport() *fundwatch.Report {
	ledger := fundwatch.NewLedger("yan")
	ledger.OpenOrBuy("001186", fundwatch.Q(1500), fundwatch.CNY(2.3333), "alipay")
	ledger.OpenOrBuy("sh513500", fundwatch.Q(200), fundwatch.CNY(1.9), "")
	ledger.OpenOrBuy("000404", fundwatch.Q(100), fundwatch.CNY(3.0), "")

	quotes := map[string]*fundwatch.Quote{
		"001186": {
			ID:        "001186",
			Name:      "富国文体健康股票",
			Price:     decimal.NewFromFloat(3.4470),
			Reference: decimal.NewFromFloat(3.2467),
			Change:    6.17,
			Final:     false,
		},
		"sh513500": {
			ID:        "sh513500",
			Name:      "标普500ETF",
			Price:     decimal.NewFromFloat(2.021),
			Reference: decimal.NewFromFloat(2.001),
			Change:    1.0,
			Final:     true,
		},
		// 000404 left out: unavailable this cycle
	}
	return fundwatch.Aggregate(ledger, quotes)
}

func TestRenderDashboard(t *testing.T) {
	got := RenderDashboard(NewDashboard(sampleReport()), DashboardRenderOptions{})

	for _, want := range []string{
		"# Portfolio of yan on",
		"富国文体健康股票 *(est.)* `alipay`",
		"标普500ETF |", // final quote carries no estimate tag
		"+6.17%",
		"**Total Market Value**",
		"No quote this cycle for: `000404`",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dashboard missing %q in:\n%s", want, got)
		}
	}

	if strings.Contains(got, "标普500ETF *(est.)*") {
		t.Errorf("final quote rendered with estimate tag:\n%s", got)
	}
}

func TestRenderDashboard_SkipUnavailable(t *testing.T) {
	got := RenderDashboard(NewDashboard(sampleReport()), DashboardRenderOptions{SkipUnavailable: true})
	if strings.Contains(got, "No quote this cycle") {
		t.Errorf("unavailable section rendered despite SkipUnavailable:\n%s", got)
	}
}

func TestRenderDashboard_EmptyLedger(t *testing.T) {
	report := fundwatch.Aggregate(fundwatch.NewLedger("empty"), nil)
	got := RenderDashboard(NewDashboard(report), DashboardRenderOptions{})
	if strings.Contains(got, "error") {
		t.Errorf("rendering an empty report failed:\n%s", got)
	}
	if !strings.Contains(got, "# Portfolio of empty") {
		t.Errorf("title missing:\n%s", got)
	}
}

func TestRenderUsers(t *testing.T) {
	db := fundwatch.NewDB()
	ledger, err := db.Create("yan")
	if err != nil {
		t.Fatal(err)
	}
	ledger.OpenOrBuy("001186", fundwatch.Q(100), fundwatch.CNY(2), "")

	got := RenderUsers(NewUserList(db))
	for _, want := range []string{"| Default | 0 |", "| yan | 1 |"} {
		if !strings.Contains(got, want) {
			t.Errorf("user list missing %q in:\n%s", want, got)
		}
	}
}
