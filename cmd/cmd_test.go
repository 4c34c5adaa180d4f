package cmd

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	fundwatch "github.com/yannyanna/fund-tracker"
)

// runCmd parses args and executes a subcommand like the commander would.
func runCmd(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

// useTempStore points the global -data-file flag at a fresh file.
func useTempStore(t *testing.T) {
	t.Helper()
	old := *dataFile
	*dataFile = filepath.Join(t.TempDir(), "fund_user_data.json")
	t.Cleanup(func() { *dataFile = old })
}

func TestTradeCommands(t *testing.T) {
	useTempStore(t)

	if got := runCmd(t, &addCmd{}, "-channel", "alipay", "001186", "1000", "2.0"); got != subcommands.ExitSuccess {
		t.Fatalf("add = %v", got)
	}
	if got := runCmd(t, &addCmd{}, "001186", "500", "3.0"); got != subcommands.ExitSuccess {
		t.Fatalf("second add = %v", got)
	}
	if got := runCmd(t, &sellCmd{}, "001186", "300"); got != subcommands.ExitSuccess {
		t.Fatalf("sell = %v", got)
	}
	if got := runCmd(t, &setCostCmd{}, "001186", "2.5"); got != subcommands.ExitSuccess {
		t.Fatalf("set-cost = %v", got)
	}

	// the store on disk reflects the whole session
	db, err := DecodeStore()
	if err != nil {
		t.Fatal(err)
	}
	ledger, err := UserLedger(db)
	if err != nil {
		t.Fatal(err)
	}
	p := ledger.Position("001186")
	if p == nil {
		t.Fatal("position not persisted")
	}
	if !p.Shares.Equal(fundwatch.Q(1200)) {
		t.Errorf("shares = %s, want 1200", p.Shares)
	}
	if !p.AverageCost.Equal(fundwatch.CNY(2.5)) {
		t.Errorf("average cost = %s, want 2.5 CNY", p.AverageCost)
	}
	if p.Channel != "alipay" {
		t.Errorf("channel = %q, want alipay", p.Channel)
	}

	if got := runCmd(t, &deleteCmd{}, "001186"); got != subcommands.ExitSuccess {
		t.Fatalf("delete = %v", got)
	}
	db, err = DecodeStore()
	if err != nil {
		t.Fatal(err)
	}
	ledger, _ = UserLedger(db)
	if ledger.Position("001186") != nil {
		t.Error("position survived delete")
	}
}

func TestTradeCommandValidation(t *testing.T) {
	useTempStore(t)

	cases := []struct {
		name string
		c    subcommands.Command
		args []string
	}{
		{"add missing args", &addCmd{}, []string{"001186", "1000"}},
		{"add bad shares", &addCmd{}, []string{"001186", "many", "2.0"}},
		{"add negative shares", &addCmd{}, []string{"001186", "-5", "2.0"}},
		{"sell unknown position", &sellCmd{}, []string{"999999", "10"}},
		{"delete unknown position", &deleteCmd{}, []string{"999999"}},
		{"set-cost bad price", &setCostCmd{}, []string{"001186", "cheap"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := runCmd(t, tc.c, tc.args...); got == subcommands.ExitSuccess {
				t.Errorf("%s %v succeeded, want failure", tc.c.Name(), tc.args)
			}
		})
	}
}

func TestQuoteCommandValidation(t *testing.T) {
	if got := runCmd(t, &quoteCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("quote without args = %v, want usage error", got)
	}
	if got := runCmd(t, &quoteCmd{}, "-provider", "tiantian", "001186"); got == subcommands.ExitSuccess {
		t.Error("unknown provider accepted")
	}
}

func TestUserCommand(t *testing.T) {
	useTempStore(t)

	if got := runCmd(t, &userCmd{}, "-create", "yan"); got != subcommands.ExitSuccess {
		t.Fatalf("user -create = %v", got)
	}
	if got := runCmd(t, &userCmd{}, "-create", "yan"); got == subcommands.ExitSuccess {
		t.Error("creating an existing user succeeded")
	}

	db, err := DecodeStore()
	if err != nil {
		t.Fatal(err)
	}
	if db.Ledger("yan") == nil {
		t.Error("created user not persisted")
	}
	if db.Ledger(fundwatch.DefaultUser) == nil {
		t.Error("default user lost on create")
	}
}

// Each watch cycle must re-read the holdings file, so positions added
// by another invocation appear on the next refresh.
func TestWatchRefreshReloadsStore(t *testing.T) {
	useTempStore(t)

	if got := runCmd(t, &addCmd{}, "001186", "1000", "2.0"); got != subcommands.ExitSuccess {
		t.Fatalf("add = %v", got)
	}

	var seen [][]string
	w := &watchCmd{render: func(_ context.Context, l *fundwatch.Ledger) (string, error) {
		seen = append(seen, l.Instruments())
		return "", nil
	}}

	if _, err := w.refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	// a second invocation edits the file between two cycles
	if got := runCmd(t, &addCmd{}, "sh513500", "200", "1.9"); got != subcommands.ExitSuccess {
		t.Fatalf("add = %v", got)
	}

	if _, err := w.refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(seen) != 2 {
		t.Fatalf("renders = %d, want 2", len(seen))
	}
	if len(seen[0]) != 1 {
		t.Errorf("first cycle saw %v, want only 001186", seen[0])
	}
	if len(seen[1]) != 2 {
		t.Errorf("second cycle saw %v, want both positions", seen[1])
	}
}

func TestUserLedgerUnknownUser(t *testing.T) {
	useTempStore(t)

	old := *userName
	*userName = "nobody"
	t.Cleanup(func() { *userName = old })

	db, err := DecodeStore()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := UserLedger(db); err == nil {
		t.Error("unknown user resolved to a ledger")
	}
}
