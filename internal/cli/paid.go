package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"organizador/internal/core"
)

type paidCmd struct {
	app *App
}

func (*paidCmd) Name() string     { return "paid" }
func (*paidCmd) Synopsis() string { return "toggle a transaction between open and paid" }
func (*paidCmd) Usage() string {
	return `organizador paid <transaction-id>
`
}

func (*paidCmd) SetFlags(*flag.FlagSet) {}

func (c *paidCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one transaction id is required.")
		return subcommands.ExitUsageError
	}

	svc, err := c.app.Service()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	status, err := svc.TogglePaid(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	label := "Aberto"
	if status == core.StatusPaid {
		label = "Pago"
	}
	fmt.Printf("%s: %s\n", f.Arg(0), label)
	return subcommands.ExitSuccess
}
