package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"organizador/internal/export"
	"organizador/internal/log"
	"organizador/internal/sheets/google"
)

type publishCmd struct {
	app *App
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "publish the ledger to a Google spreadsheet" }
func (*publishCmd) Usage() string {
	return `organizador publish

  Mirrors the four export sheets onto the spreadsheet named by
  GOOGLE_SPREADSHEET_ID, using service account credentials.
`
}

func (*publishCmd) SetFlags(*flag.FlagSet) {}

func (c *publishCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := google.NewFromEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	svc, err := c.app.Service()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	blocks := export.Blocks(snap)
	if err := client.Publish(ctx, blocks); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	c.app.Logger.InfoContext(ctx, "Ledger published",
		log.FieldCount, len(snap.Transactions))
	fmt.Println("published", len(blocks), "sheets")
	return subcommands.ExitSuccess
}
