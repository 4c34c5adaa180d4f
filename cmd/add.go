package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	fundwatch "github.com/yannyanna/fund-tracker"
)

type addCmd struct {
	channel string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "open a position or buy into an existing one" }
func (*addCmd) Usage() string {
	return `fundwatch add [-channel <name>] <id> <shares> <price>

  Opens a position, or applies a buy to an existing one, recomputing the
  average cost as the shares-weighted mean of the old basis and the trade.
  A price of 0 is accepted as a cost-basis placeholder.

Usage Examples:
# Buy 1000 shares of an open-end fund at 2.0 CNY each.
$ fundwatch add 001186 1000 2.0

# Add 10 grams of gold bought at 550 CNY/g through a bank.
$ fundwatch add -channel icbc XAUCNY 10 550
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.channel, "channel", "", "Brokerage channel to tag the position with.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	shares, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return fail(fmt.Errorf("invalid share count %q: %w", f.Arg(1), err))
	}
	price, err := decimal.NewFromString(f.Arg(2))
	if err != nil {
		return fail(fmt.Errorf("invalid price %q: %w", f.Arg(2), err))
	}

	db, err := DecodeStore()
	if err != nil {
		return fail(err)
	}
	ledger, err := UserLedger(db)
	if err != nil {
		return fail(err)
	}

	if err := ledger.OpenOrBuy(id, fundwatch.Q(shares), fundwatch.CNY(price), c.channel); err != nil {
		return fail(err)
	}
	if err := EncodeStore(db); err != nil {
		return fail(err)
	}

	p := ledger.Position(id)
	fmt.Printf("%s: %s shares at an average cost of %s\n", p.ID, p.Shares, p.AverageCost)
	return subcommands.ExitSuccess
}
