package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a position from the ledger" }
func (*deleteCmd) Usage() string {
	return `fundwatch delete <id>

  Removes the position entirely, whatever its share count.
`
}

func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	db, err := DecodeStore()
	if err != nil {
		return fail(err)
	}
	ledger, err := UserLedger(db)
	if err != nil {
		return fail(err)
	}

	if !ledger.Delete(id) {
		return fail(fmt.Errorf("delete %s: no such position", id))
	}
	if err := EncodeStore(db); err != nil {
		return fail(err)
	}

	fmt.Printf("%s: position removed\n", id)
	return subcommands.ExitSuccess
}
