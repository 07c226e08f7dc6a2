package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"organizador/internal/export"
	"organizador/internal/log"
)

type exportCmd struct {
	app *App
	dir string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the whole ledger to an XLSX workbook" }
func (*exportCmd) Usage() string {
	return `organizador export [-dir <directory>]

  Writes transactions, closing dates, card statuses and extras into a dated
  four-sheet workbook that can be re-imported as-is.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "Output directory. Defaults to EXPORT_DIR.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dir := c.dir
	if dir == "" {
		dir = c.app.Config.ExportDir
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

	path, err := export.Save(snap, dir, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	c.app.Logger.InfoContext(ctx, "Ledger exported",
		log.FieldFile, path, log.FieldCount, len(snap.Transactions))
	fmt.Println(path)
	return subcommands.ExitSuccess
}
