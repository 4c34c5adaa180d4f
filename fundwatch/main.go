package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/yannyanna/fund-tracker/cmd"
)

// completion describes the CLI tree for shell completion. It must be
// run before flag.Parse: when invoked by the shell it prints the
// candidates and exits.
func completion() {
	subs := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		subs[c.Name()] = &complete.Command{}
	}
	tree := &complete.Command{
		Sub: subs,
		Flags: map[string]complete.Predictor{
			"data-file": predict.Files("*.json"),
			"user":      predict.Nothing,
		},
	}
	tree.Complete(path.Base(os.Args[0]))
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
