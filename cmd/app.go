// Package cmd implements the CLI application to track a fund portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	fundwatch "github.com/yannyanna/fund-tracker"
	"github.com/yannyanna/fund-tracker/eastmoney"
	"github.com/yannyanna/fund-tracker/goldprice"
	"github.com/yannyanna/fund-tracker/sina"
	"golang.org/x/time/rate"
)

// Commands is the list of all subcommands, in the order they are
// registered and shown in help.
var Commands = []subcommands.Command{
	&addCmd{},
	&sellCmd{},
	&deleteCmd{},
	&setChannelCmd{},
	&setCostCmd{},
	&dashboardCmd{},
	&watchCmd{},
	&quoteCmd{},
	&userCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataFile = flag.String("data-file", "fund_user_data.json", "Path to the holdings file (JSON)")
var userName = flag.String("user", fundwatch.DefaultUser, "User whose ledger is read and written")

// quote response cache windows: funds move intraday, gold barely does.
const (
	fundCacheWindow = 30 * time.Second
	goldCacheWindow = 5 * time.Minute
)

// DecodeStore reads the holdings file. A missing file yields a fresh
// store so the first `add` works without any setup.
func DecodeStore() (*fundwatch.DB, error) {
	return fundwatch.DecodeDB(*dataFile)
}

// EncodeStore writes the holdings file back.
func EncodeStore(db *fundwatch.DB) error {
	return fundwatch.EncodeDB(*dataFile, db)
}

// UserLedger resolves the -user flag against the store.
func UserLedger(db *fundwatch.DB) (*fundwatch.Ledger, error) {
	ledger := db.Ledger(*userName)
	if ledger == nil {
		return nil, fmt.Errorf("user %q does not exist (create it with: user -create %s)", *userName, *userName)
	}
	return ledger, nil
}

// NewFetcher builds the quote pipeline with one source per provider,
// each behind its own short-lived response cache.
func NewFetcher() *fundwatch.Fetcher {
	funds := fundwatch.NewCachingClient(fundCacheWindow, 2*time.Second)
	gold := fundwatch.NewCachingClient(goldCacheWindow, 3*time.Second)

	return &fundwatch.Fetcher{
		Sources: fundwatch.Registry{
			fundwatch.Eastmoney: eastmoney.New(funds),
			fundwatch.Sina:      sina.New(funds),
			fundwatch.GoldPrice: goldprice.New(gold),
		},
		Window:  fundwatch.AShareWindow(),
		Limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fall back to the raw markdown, still perfectly readable
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure status, the common
// epilogue of every subcommand.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
