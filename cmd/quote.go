package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	fundwatch "github.com/yannyanna/fund-tracker"
)

// quoteCmd fetches a single instrument, for checking a code before
// adding it or diagnosing a provider.
type quoteCmd struct {
	provider string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch and display a single quote" }
func (*quoteCmd) Usage() string {
	return `fundwatch quote [-provider <name>] <id>

  Fetches one quote and displays it without touching any ledger. The
  provider is normally selected from the shape of the id; -provider
  (eastmoney, sina, goldprice) overrides that dispatch.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.provider, "provider", "", "Force a provider instead of selecting it from the id.")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	fetcher := NewFetcher()
	if c.provider != "" {
		p, err := fundwatch.ParseProvider(c.provider)
		if err != nil {
			return fail(err)
		}
		src, ok := fetcher.Sources[p]
		if !ok {
			return fail(fmt.Errorf("no source registered for provider %s", p))
		}
		// route the id straight to the forced source
		fetcher.Sources = fundwatch.Registry{
			fundwatch.Eastmoney: src,
			fundwatch.Sina:      src,
			fundwatch.GoldPrice: src,
		}
	}

	q := fetcher.Fetch(ctx, id)
	if q == nil {
		return fail(fmt.Errorf("no quote available for %s", id))
	}

	state := "estimate"
	if q.Final {
		state = "final"
	}
	fmt.Printf("%s  %s\n", q.ID, q.Name)
	fmt.Printf("  price      %s\n", q.Price)
	fmt.Printf("  reference  %s\n", q.Reference)
	fmt.Printf("  change     %s (%s)\n", q.Change.SignedString(), state)
	if q.Time != "" {
		fmt.Printf("  observed   %s\n", q.Time)
	}
	return subcommands.ExitSuccess
}
