package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	fundwatch "github.com/yannyanna/fund-tracker"
	"github.com/yannyanna/fund-tracker/renderer"
)

// dashboardCmd holds the flags for the 'dashboard' subcommand.
type dashboardCmd struct {
	skipUnavailable bool
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "fetch quotes and display the portfolio" }
func (*dashboardCmd) Usage() string {
	return `fundwatch dashboard [-skip-unavailable]

  Fetches the latest quote for every position, values the portfolio and
  displays it. Rows built from a running intraday estimate are tagged
  (est.). Positions whose quote could not be resolved are listed apart
  and excluded from the totals; holdings are never modified by a fetch.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.skipUnavailable, "skip-unavailable", false, "Do not list positions without a quote.")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := DecodeStore()
	if err != nil {
		return fail(err)
	}
	ledger, err := UserLedger(db)
	if err != nil {
		return fail(err)
	}

	md, err := c.render(ctx, ledger)
	if err != nil {
		return fail(err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// render runs one full refresh cycle and returns the dashboard markdown.
func (c *dashboardCmd) render(ctx context.Context, ledger *fundwatch.Ledger) (string, error) {
	if len(ledger.Positions()) == 0 {
		return "", fmt.Errorf("user %q holds no positions (open one with: add <id> <shares> <price>)", ledger.User())
	}

	fetcher := NewFetcher()
	quotes := fetcher.FetchAll(ctx, ledger.Instruments())
	report := fundwatch.Aggregate(ledger, quotes)

	opts := renderer.DashboardRenderOptions{SkipUnavailable: c.skipUnavailable}
	return renderer.RenderDashboard(renderer.NewDashboard(report), opts), nil
}
