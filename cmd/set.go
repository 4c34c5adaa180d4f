package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	fundwatch "github.com/yannyanna/fund-tracker"
)

// Manual corrections that bypass the trade arithmetic.

type setChannelCmd struct{}

func (*setChannelCmd) Name() string     { return "set-channel" }
func (*setChannelCmd) Synopsis() string { return "tag a position with a brokerage channel" }
func (*setChannelCmd) Usage() string {
	return `fundwatch set-channel <id> <channel>

  Tags a position with a free-text channel, typically the brokerage it
  is held at. An empty channel clears the tag.
`
}

func (*setChannelCmd) SetFlags(*flag.FlagSet) {}

func (c *setChannelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	db, err := DecodeStore()
	if err != nil {
		return fail(err)
	}
	ledger, err := UserLedger(db)
	if err != nil {
		return fail(err)
	}

	if err := ledger.SetChannel(f.Arg(0), f.Arg(1)); err != nil {
		return fail(err)
	}
	if err := EncodeStore(db); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type setCostCmd struct{}

func (*setCostCmd) Name() string     { return "set-cost" }
func (*setCostCmd) Synopsis() string { return "override a position's average cost" }
func (*setCostCmd) Usage() string {
	return `fundwatch set-cost <id> <price>

  Overrides the average cost per share directly, for correcting a
  position entered with a wrong or unknown price.
`
}

func (*setCostCmd) SetFlags(*flag.FlagSet) {}

func (c *setCostCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return fail(fmt.Errorf("invalid price %q: %w", f.Arg(1), err))
	}

	db, err := DecodeStore()
	if err != nil {
		return fail(err)
	}
	ledger, err := UserLedger(db)
	if err != nil {
		return fail(err)
	}

	if err := ledger.SetCost(f.Arg(0), fundwatch.CNY(price)); err != nil {
		return fail(err)
	}
	if err := EncodeStore(db); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
