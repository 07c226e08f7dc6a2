// Package google publishes the ledger to a Google spreadsheet using a
// service account. Each block becomes one tab, cleared and rewritten whole
// on every publish.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"organizador/internal/export"
	"organizador/internal/log"
	ports "organizador/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ ports.Publisher = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Publish mirrors the blocks onto the spreadsheet. Missing tabs are created;
// existing tabs are cleared before being rewritten so stale rows cannot
// linger past a shrinking export.
func (c *Client) Publish(ctx context.Context, blocks []export.Block) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	existing, err := c.existingTabs(ctx)
	if err != nil {
		return err
	}
	if err := c.ensureTabs(ctx, blocks, existing); err != nil {
		return err
	}

	for _, b := range blocks {
		rng := fmt.Sprintf("%s!A:Z", b.Name)
		if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
			Context(ctx).Do(); err != nil {
			return fmt.Errorf("clear %s: %w", b.Name, err)
		}

		values := make([][]interface{}, 0, len(b.Rows)+1)
		values = append(values, b.Header)
		values = append(values, b.Rows...)

		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID,
			fmt.Sprintf("%s!A1", b.Name),
			&gsheet.ValueRange{Values: values}).
			ValueInputOption("RAW").
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write %s: %w", b.Name, err)
		}
		slog.InfoContext(ctx, "Sheet published", log.FieldSheet, b.Name, log.FieldRows, len(b.Rows))
	}
	return nil
}

func (c *Client) existingTabs(ctx context.Context) (map[string]bool, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet: %w", err)
	}
	tabs := make(map[string]bool, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			tabs[s.Properties.Title] = true
		}
	}
	return tabs, nil
}

func (c *Client) ensureTabs(ctx context.Context, blocks []export.Block, existing map[string]bool) error {
	var requests []*gsheet.Request
	for _, b := range blocks {
		if existing[b.Name] {
			continue
		}
		requests = append(requests, &gsheet.Request{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: b.Name},
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}
	_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID,
		&gsheet.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("create missing tabs: %w", err)
	}
	return nil
}
