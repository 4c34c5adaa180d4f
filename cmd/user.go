package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/yannyanna/fund-tracker/renderer"
)

type userCmd struct {
	create string
}

func (*userCmd) Name() string     { return "user" }
func (*userCmd) Synopsis() string { return "list users or create a new one" }
func (*userCmd) Usage() string {
	return `fundwatch user [-create <name>]

  Without flags, lists the users of the holdings file. With -create,
  adds a new user with an empty ledger. Select the active user per
  invocation with the global -user flag.
`
}

func (c *userCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.create, "create", "", "Name of the user to create.")
}

func (c *userCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := DecodeStore()
	if err != nil {
		return fail(err)
	}

	if c.create != "" {
		if _, err := db.Create(c.create); err != nil {
			return fail(err)
		}
		if err := EncodeStore(db); err != nil {
			return fail(err)
		}
		fmt.Printf("user %q created\n", c.create)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderUsers(renderer.NewUserList(db)))
	return subcommands.ExitSuccess
}
