package sheets

import (
	"context"
	"fmt"

	"github.com/futig/custdev-bot/internal/config"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client appends survey result rows to a Google Sheet. It owns the service
// account auth lifecycle; callers only see AppendRow.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	appendRange   string
	logger        *zap.Logger
}

// NewClient authorizes against the Sheets API with a service account
// credentials file.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Client, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	logger.Info("google sheets client authorized",
		zap.String("spreadsheet_id", cfg.SpreadsheetID),
		zap.String("append_range", cfg.AppendRange),
	)

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   cfg.AppendRange,
		logger:        logger,
	}, nil
}

// AppendRow appends one ordered row to the results sheet. A single
// best-effort call: any failure is surfaced immediately, no internal retry.
func (c *Client) AppendRow(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}

	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{values},
	}

	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetID, c.appendRange, valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		ctxzap.Error(ctx, "failed to append row to sheet",
			zap.Error(err),
			zap.String("spreadsheet_id", c.spreadsheetID),
		)
		return fmt.Errorf("append row: %w", err)
	}

	ctxzap.Info(ctx, "row appended to sheet",
		zap.Int("columns", len(row)),
	)

	return nil
}
