package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	fundwatch "github.com/yannyanna/fund-tracker"
)

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	dashboard dashboardCmd
	every     int

	render func(context.Context, *fundwatch.Ledger) (string, error) // test seam
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "re-render the dashboard every n seconds" }
func (*watchCmd) Usage() string {
	return `fundwatch watch [-n <seconds>] [-skip-unavailable]

  Runs the dashboard in a loop until interrupted. Quote responses are
  cached for a short window, so a tight interval does not hammer the
  providers.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.every, "n", 30, "Seconds between refreshes.")
	f.BoolVar(&c.dashboard.skipUnavailable, "skip-unavailable", false, "Do not list positions without a quote.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.every <= 0 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	ticker := time.NewTicker(time.Duration(c.every) * time.Second)
	defer ticker.Stop()

	for {
		md, err := c.refresh(ctx)
		if err != nil {
			return fail(err)
		}
		fmt.Println("\033[2J")
		printMarkdown(md)

		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case <-ticker.C:
		}
	}
}

// refresh runs one full cycle. The store is reloaded every time, so
// holdings edited by another invocation show up on the next refresh.
func (c *watchCmd) refresh(ctx context.Context) (string, error) {
	db, err := DecodeStore()
	if err != nil {
		return "", err
	}
	ledger, err := UserLedger(db)
	if err != nil {
		return "", err
	}

	render := c.render
	if render == nil {
		render = c.dashboard.render
	}
	return render(ctx, ledger)
}
