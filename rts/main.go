// Command rts tracks a BRVM stock portfolio from the command line.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/NeoByte-Technology/RealTimeStock/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion().Complete("rts")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion declares the shell completion tree. It only talks when the
// shell asks for completions.
func completion() *complete.Command {
	files := map[string]complete.Predictor{
		"ledger-file": predict.Files("*.jsonl"),
		"alerts-file": predict.Files("*.jsonl"),
		"prices-dir":  predict.Dirs("*"),
	}
	return &complete.Command{
		Flags: files,
		Sub: map[string]*complete.Command{
			"buy":     {},
			"sell":    {},
			"record":  {},
			"import":  {Flags: map[string]complete.Predictor{"f": predict.Files("*.csv")}},
			"fmt":     {},
			"summary": {},
			"analyze": {},
			"alerts":  {},
			"fetch":   {},
		},
	}
}
