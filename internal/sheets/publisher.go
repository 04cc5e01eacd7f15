package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/edubridge/internal/common"
	"github.com/Veraticus/edubridge/internal/model"
)

// Result describes a completed publish.
type Result struct {
	SpreadsheetID  string
	SpreadsheetURL string
	Rows           int
}

// Publisher writes the catalog to a spreadsheet, replacing what was there.
type Publisher struct {
	service *sheets.Service
	logger  *slog.Logger
	now     func() time.Time
	config  Config
}

// NewPublisher creates a publisher authenticated from config.
func NewPublisher(ctx context.Context, config Config, logger *slog.Logger) (*Publisher, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newPublisher(service, config, logger), nil
}

func newPublisher(service *sheets.Service, config Config, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		service: service,
		logger:  logger,
		config:  config,
		now:     time.Now,
	}
}

// Publish writes every course with its converted total.
func (p *Publisher) Publish(ctx context.Context, courses []model.Course, rate float64) (Result, error) {
	p.logger.Info("publishing catalog", "courses", len(courses), "rate", rate)

	spreadsheetID, url, err := p.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	retryOpts := common.RetryOptions{
		Operation:    "sheets publish",
		MaxAttempts:  p.config.RetryAttempts,
		InitialDelay: p.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	if err := common.WithRetry(ctx, func() error {
		return classifyAPIError(p.clearSheet(ctx, spreadsheetID))
	}, retryOpts); err != nil {
		return Result{}, fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := BuildRows(courses, rate, p.now())

	if err := common.WithRetry(ctx, func() error {
		return classifyAPIError(p.writeData(ctx, spreadsheetID, values))
	}, retryOpts); err != nil {
		return Result{}, fmt.Errorf("failed to write data: %w", err)
	}

	if p.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return classifyAPIError(p.applyFormatting(ctx, spreadsheetID, len(values)))
		}, retryOpts)
		if err != nil {
			// The data is already written.
			p.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	p.logger.Info("catalog published", "spreadsheet_id", spreadsheetID, "rows_written", len(values))

	return Result{SpreadsheetID: spreadsheetID, SpreadsheetURL: url, Rows: len(courses)}, nil
}

// classifyAPIError maps Sheets API status codes onto the retry policy:
// 429 backs off as a rate limit, other 4xx responses are not retried.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return common.Permanent(err)
	}
	return err
}

// tokenSource builds credentials for whichever auth method config uses.
func tokenSource(ctx context.Context, config Config) (oauth2.TokenSource, error) {
	method, err := config.authMethod()
	if err != nil {
		return nil, err
	}

	if method == "service_account" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		return jwtConfig.TokenSource(ctx), nil
	}

	oc := OAuth2Config{ClientID: config.ClientID, ClientSecret: config.ClientSecret}.oauthConfig()
	return oc.TokenSource(ctx, &oauth2.Token{RefreshToken: config.RefreshToken, TokenType: "Bearer"}), nil
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	ts, err := tokenSource(ctx, config)
	if err != nil {
		return nil, err
	}
	srv, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// getOrCreateSpreadsheet returns the configured spreadsheet, creating one
// when no id is set.
func (p *Publisher) getOrCreateSpreadsheet(ctx context.Context) (string, string, error) {
	if p.config.SpreadsheetID != "" {
		existing, err := p.service.Spreadsheets.Get(p.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", "", fmt.Errorf("unable to access spreadsheet %s: %w", p.config.SpreadsheetID, err)
		}
		return existing.SpreadsheetId, existing.SpreadsheetUrl, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    p.config.SpreadsheetName,
			TimeZone: p.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: p.config.SheetTitle,
				},
			},
		},
	}

	created, err := p.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	p.logger.Info("created new spreadsheet", "id", created.SpreadsheetId, "url", created.SpreadsheetUrl)

	return created.SpreadsheetId, created.SpreadsheetUrl, nil
}

func (p *Publisher) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := p.service.Spreadsheets.Values.Clear(spreadsheetID, p.config.SheetTitle+"!A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes values in batches to stay under request size limits.
func (p *Publisher) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += p.config.BatchSize {
		end := min(i+p.config.BatchSize, len(values))
		batch := values[i:end]

		rangeStr := fmt.Sprintf("%s!A%d", p.config.SheetTitle, i+1)
		_, err := p.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: batch}).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		p.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

func (p *Publisher) applyFormatting(ctx context.Context, spreadsheetID string, totalRows int) error {
	sheetID, err := p.sheetID(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: formattingRequests(sheetID, totalRows),
	}
	_, err = p.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}

func (p *Publisher) sheetID(ctx context.Context, spreadsheetID string) (int64, error) {
	ss, err := p.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == p.config.SheetTitle {
			return s.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found: %w", p.config.SheetTitle, common.ErrNotFound)
}

// formattingRequests bolds the title and header, formats fee columns and
// freezes everything above the first course.
func formattingRequests(sheetID int64, totalRows int) []*sheets.Request {
	bold := func(startRow, endRow int64, fontSize int64) *sheets.Request {
		return &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    startRow,
					EndRowIndex:      endRow,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(len(courseHeader)),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true, FontSize: fontSize},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		}
	}

	currency := func(startCol, endCol int64, pattern string) *sheets.Request {
		return &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    headerRows,
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: startCol,
					EndColumnIndex:   endCol,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{Type: "CURRENCY", Pattern: pattern},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		}
	}

	return []*sheets.Request{
		bold(0, 1, 14),
		bold(headerRows-1, headerRows, 10),
		currency(4, 7, `"RM" #,##0.00`),
		currency(7, 8, `"৳" #,##0`),
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(len(courseHeader)),
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: headerRows,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}
}
