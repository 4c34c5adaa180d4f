package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/google/subcommands"
	"github.com/yannyanna/fund-tracker/agent"
	"google.golang.org/genai"
)

type assistCmd struct {
	dashboard dashboardCmd
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask Gemini to comment on the dashboard" }
func (*assistCmd) Usage() string {
	return `fundwatch assist [<question>...]

  Fetches the dashboard and asks Gemini for a short commentary on the
  day's movements, optionally focused by a question. Requires the
  GEMINI_API_KEY environment variable. The model only ever sees the
  rendered dashboard; it cannot change your holdings.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := DecodeStore()
	if err != nil {
		return fail(err)
	}
	ledger, err := UserLedger(db)
	if err != nil {
		return fail(err)
	}

	md, err := c.dashboard.render(ctx, ledger)
	if err != nil {
		return fail(err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(err)
	}

	analyst := agent.NewAnalyst()
	if err := analyst.Start(ctx, client); err != nil {
		return fail(err)
	}
	comment, err := analyst.Comment(ctx, md, strings.Join(f.Args(), " "))
	if err != nil {
		return fail(err)
	}

	printMarkdown(md)
	printMarkdown(comment)
	return subcommands.ExitSuccess
}
