package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/example/hours-bot/internal/conversation"
)

const (
	// The worksheet carries a fixed block of header and formula rows before
	// the first data row; the write scan starts below it.
	headerRows = 8

	// Rows pre-filled with a leading dash are placeholders and count as
	// writable.
	placeholderPrefix = "-"
)

// valuesAPI is the slice of the Sheets values surface the gateway touches,
// narrowed so the write and retry policy can be exercised without a network.
type valuesAPI interface {
	Get(ctx context.Context, rangeRef string) ([][]interface{}, error)
	Update(ctx context.Context, rangeRef string, row []interface{}) error
	Append(ctx context.Context, rangeRef string, row []interface{}) error
}

// Gateway persists confirmed timesheet rows to a Google Sheets worksheet and
// serves the admin read operations. It implements conversation.Gateway.
type Gateway struct {
	mu        sync.Mutex
	connect   func(ctx context.Context) (valuesAPI, error)
	values    valuesAPI
	worksheet string
	logger    *slog.Logger
	connected bool
}

// NewGateway authenticates with the supplied service-account credential JSON
// and opens the spreadsheet. The connection is established eagerly so a
// misconfigured credential fails at startup, not on the first write.
func NewGateway(ctx context.Context, credentialsJSON []byte, spreadsheetID, worksheet string, logger *slog.Logger) (*Gateway, error) {
	connect := func(ctx context.Context) (valuesAPI, error) {
		config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("sheets: parse service account credentials: %w", err)
		}
		service, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
		if err != nil {
			return nil, fmt.Errorf("sheets: build service: %w", err)
		}
		return &googleValues{service: service, spreadsheetID: spreadsheetID}, nil
	}
	return newGateway(ctx, connect, worksheet, logger)
}

func newGateway(ctx context.Context, connect func(ctx context.Context) (valuesAPI, error), worksheet string, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	values, err := connect(ctx)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		connect:   connect,
		values:    values,
		worksheet: worksheet,
		logger:    logger,
		connected: true,
	}, nil
}

// AppendOrUpdate writes the row to the first usable data row, appending when
// none exists. On failure it reconnects once and retries once with an
// unconditional append, then reports permanent failure. The row is passed
// explicitly through both attempts; nothing is recaptured across the failure
// boundary.
func (g *Gateway) AppendOrUpdate(ctx context.Context, row conversation.TimesheetRow) error {
	record := []interface{}{row.Date, row.Start, row.End}

	err := g.writeRow(ctx, record)
	if err == nil {
		g.setConnected(true)
		return nil
	}
	g.logger.WarnContext(ctx, "timesheet write failed, reconnecting once", "error", err)

	if rerr := g.reconnect(ctx); rerr != nil {
		g.setConnected(false)
		return fmt.Errorf("sheets: reconnect after write failure: %w", rerr)
	}
	if rerr := g.api().Append(ctx, g.dataRange(), record); rerr != nil {
		g.setConnected(false)
		return fmt.Errorf("sheets: retry append: %w", rerr)
	}

	g.setConnected(true)
	return nil
}

// Stats reports the number of data rows and the date in the last one.
func (g *Gateway) Stats(ctx context.Context) (conversation.TimesheetStats, error) {
	column, err := g.api().Get(ctx, g.dateColumn())
	if err != nil {
		g.setConnected(false)
		return conversation.TimesheetStats{}, fmt.Errorf("sheets: read date column: %w", err)
	}
	g.setConnected(true)

	stats := conversation.TimesheetStats{}
	for i := headerRows; i < len(column); i++ {
		cell := cellText(column[i])
		if cell == "" || strings.HasPrefix(cell, placeholderPrefix) {
			continue
		}
		stats.RowCount++
		stats.LastDate = cell
	}
	return stats, nil
}

// Recent returns up to limit of the most recently filled rows, oldest first.
func (g *Gateway) Recent(ctx context.Context, limit int) ([]conversation.TimesheetRow, error) {
	values, err := g.api().Get(ctx, g.dataRange())
	if err != nil {
		g.setConnected(false)
		return nil, fmt.Errorf("sheets: read rows: %w", err)
	}
	g.setConnected(true)

	rows := make([]conversation.TimesheetRow, 0, limit)
	for i := headerRows; i < len(values); i++ {
		date := cellText(values[i])
		if date == "" || strings.HasPrefix(date, placeholderPrefix) {
			continue
		}
		row := conversation.TimesheetRow{Date: date}
		if len(values[i]) > 1 {
			row.Start = strings.TrimSpace(fmt.Sprint(values[i][1]))
		}
		if len(values[i]) > 2 {
			row.End = strings.TrimSpace(fmt.Sprint(values[i][2]))
		}
		rows = append(rows, row)
	}
	if len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	return rows, nil
}

// Ping probes the worksheet with a single-cell read.
func (g *Gateway) Ping(ctx context.Context) error {
	_, err := g.api().Get(ctx, fmt.Sprintf("%s!A1", g.worksheet))
	g.setConnected(err == nil)
	return err
}

// Connected reports the outcome of the most recent sheet interaction.
func (g *Gateway) Connected() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.connected
}

// writeRow is the single retryable write: locate the first usable row and
// update it, or append past the last row.
func (g *Gateway) writeRow(ctx context.Context, record []interface{}) error {
	column, err := g.api().Get(ctx, g.dateColumn())
	if err != nil {
		return err
	}
	if rowNumber, ok := firstUsableRow(column); ok {
		return g.api().Update(ctx, fmt.Sprintf("%s!A%d:C%d", g.worksheet, rowNumber, rowNumber), record)
	}
	return g.api().Append(ctx, g.dataRange(), record)
}

// firstUsableRow returns the 1-based sheet row of the first data row whose
// date cell is empty or still holds a placeholder marker.
func firstUsableRow(column [][]interface{}) (int, bool) {
	for i := headerRows; i < len(column); i++ {
		cell := cellText(column[i])
		if cell == "" || strings.HasPrefix(cell, placeholderPrefix) {
			return i + 1, true
		}
	}
	return 0, false
}

func cellText(row []interface{}) string {
	if len(row) == 0 {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[0]))
}

func (g *Gateway) api() valuesAPI {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.values
}

func (g *Gateway) reconnect(ctx context.Context) error {
	values, err := g.connect(ctx)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.values = values
	g.mu.Unlock()
	return nil
}

func (g *Gateway) setConnected(connected bool) {
	g.mu.Lock()
	g.connected = connected
	g.mu.Unlock()
}

func (g *Gateway) dateColumn() string {
	return fmt.Sprintf("%s!A:A", g.worksheet)
}

func (g *Gateway) dataRange() string {
	return fmt.Sprintf("%s!A:C", g.worksheet)
}

// googleValues adapts the generated Sheets client to valuesAPI.
type googleValues struct {
	service       *sheets.Service
	spreadsheetID string
}

func (v *googleValues) Get(ctx context.Context, rangeRef string) ([][]interface{}, error) {
	resp, err := v.service.Spreadsheets.Values.Get(v.spreadsheetID, rangeRef).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (v *googleValues) Update(ctx context.Context, rangeRef string, row []interface{}) error {
	_, err := v.service.Spreadsheets.Values.
		Update(v.spreadsheetID, rangeRef, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

func (v *googleValues) Append(ctx context.Context, rangeRef string, row []interface{}) error {
	_, err := v.service.Spreadsheets.Values.
		Append(v.spreadsheetID, rangeRef, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
