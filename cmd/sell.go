package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	fundwatch "github.com/yannyanna/fund-tracker"
)

type sellCmd struct{}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "reduce a position's share count" }
func (*sellCmd) Usage() string {
	return `fundwatch sell <id> <shares>

  Reduces a position. The average cost of the remaining shares does not
  change. Selling more than held clamps the position to zero; the
  position stays in the ledger and can be reopened by a later buy.
`
}

func (*sellCmd) SetFlags(*flag.FlagSet) {}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	shares, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return fail(fmt.Errorf("invalid share count %q: %w", f.Arg(1), err))
	}

	db, err := DecodeStore()
	if err != nil {
		return fail(err)
	}
	ledger, err := UserLedger(db)
	if err != nil {
		return fail(err)
	}

	if err := ledger.Sell(id, fundwatch.Q(shares)); err != nil {
		return fail(err)
	}
	if err := EncodeStore(db); err != nil {
		return fail(err)
	}

	p := ledger.Position(id)
	fmt.Printf("%s: %s shares remaining\n", p.ID, p.Shares)
	return subcommands.ExitSuccess
}
