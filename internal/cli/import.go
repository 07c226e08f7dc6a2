package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"organizador/internal/importer"
	"organizador/internal/log"
)

type importCmd struct {
	app *App
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from XLSX or CSV files" }
func (*importCmd) Usage() string {
	return `organizador import <file.xlsx|file.csv> [more files...]

  Reads spreadsheet rows, classifies them into transactions, card statuses,
  extras and closing dates, and merges everything into the ledger.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	files := f.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one file is required.")
		return subcommands.ExitUsageError
	}

	now := time.Now()
	batches := make([]importer.Batch, len(files))

	// parse in parallel, merge strictly in argument order
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, sheet, err := readRecords(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			batches[i] = importer.MapRows(records, now)
			c.app.Logger.InfoContext(gctx, "File parsed",
				log.FieldFile, path, log.FieldSheet, sheet, log.FieldRows, batches[i].Rows)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	svc, err := c.app.Service()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	for i, batch := range batches {
		if _, err := svc.ImportBatch(ctx, batch); err != nil {
			fmt.Fprintf(os.Stderr, "Error merging %s: %v\n", files[i], err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s: %d rows, %d transactions, %d extras, %d card statuses, %d closing dates\n",
			files[i], batch.Rows, len(batch.Transactions), len(batch.Extras),
			len(batch.CardMeta), len(batch.ClosingDates))
	}
	return subcommands.ExitSuccess
}

// readRecords reads one input file into flat records. The reported sheet name
// is "csv" for CSV input.
func readRecords(path string) ([]importer.Record, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return importer.ReadWorkbook(path)
	case ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		records, err := importer.ReadCSV(string(data))
		return records, "csv", err
	default:
		return nil, "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}
