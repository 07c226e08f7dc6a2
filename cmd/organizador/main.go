package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"organizador/internal/cli"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	app := cli.NewApp()
	cli.Register(commander, app)

	flag.Parse()
	status := commander.Execute(context.Background())

	// os.Exit skips deferred calls, close explicitly
	app.Close()
	os.Exit(int(status))
}
