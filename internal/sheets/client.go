// Package sheets wraps the Google Sheets and Drive APIs as the portal's
// datastore. Worksheets are read as header-mapped records and written as
// positional full-width rows.
package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/pragyanai/demotrack/internal/config"
)

var spreadsheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// Record is a worksheet row keyed by the header row. Row is the 1-based
// sheet row (header row is 1, first record is 2).
type Record struct {
	Row    int
	Values map[string]string
}

// Get returns the trimmed cell value for a header, or "" when absent.
func (r Record) Get(header string) string {
	return strings.TrimSpace(r.Values[header])
}

// Client is an authorized Sheets + Drive API client.
type Client struct {
	svc    *sheets.Service
	drive  *drive.Service
	logger *zap.Logger
}

// NewClient authorizes against the Sheets and Drive APIs with a
// service-account key, mirroring the scopes the workbooks were shared with.
func NewClient(ctx context.Context, cfg *config.SheetsConfig, logger *zap.Logger) (*Client, error) {
	data := []byte(cfg.CredentialsJSON)
	if len(data) == 0 {
		var err error
		data, err = os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account credentials: %w", err)
		}
	}

	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	httpClient := conf.Client(ctx)

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	logger.Info("authorized with Google Sheets", zap.String("client_email", conf.Email))

	return &Client{svc: svc, drive: driveSvc, logger: logger}, nil
}

// Records reads a worksheet and maps each data row by the header row.
// Rows shorter than the header are padded with empty cells.
func (c *Client) Records(ctx context.Context, spreadsheetID, worksheet string) ([]Record, []string, error) {
	readRange := fmt.Sprintf("%s!A1:Z", worksheet)
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read worksheet %q: %w", worksheet, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	records := make([]Record, 0, len(resp.Values)-1)
	for i, row := range resp.Values[1:] {
		values := make(map[string]string, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			if j < len(row) {
				values[header] = fmt.Sprint(row[j])
			} else {
				values[header] = ""
			}
		}
		records = append(records, Record{Row: i + 2, Values: values})
	}
	return records, headers, nil
}

// AppendRow appends a positional row to the worksheet.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, worksheet string, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, worksheet+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %q: %w", worksheet, err)
	}
	return nil
}

// UpdateRow overwrites an entire row starting at column A.
func (c *Client) UpdateRow(ctx context.Context, spreadsheetID, worksheet string, rowIndex int, row []interface{}) error {
	writeRange := fmt.Sprintf("%s!A%d:%s%d", worksheet, rowIndex, ColumnLetter(len(row)), rowIndex)
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update row %d in %q: %w", rowIndex, worksheet, err)
	}
	return nil
}

// UpdateCell writes a single cell. Row and column are 1-based.
func (c *Client) UpdateCell(ctx context.Context, spreadsheetID, worksheet string, rowIndex, colIndex int, value string) error {
	cellRange := fmt.Sprintf("%s!%s%d", worksheet, ColumnLetter(colIndex), rowIndex)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, cellRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update cell %s in %q: %w", cellRange, worksheet, err)
	}
	return nil
}

// CopySpreadsheet copies a template workbook via the Drive API and returns
// the new spreadsheet's ID and URL.
func (c *Client) CopySpreadsheet(ctx context.Context, templateID, title string) (string, string, error) {
	file, err := c.drive.Files.Copy(templateID, &drive.File{Name: title}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to copy template spreadsheet: %w", err)
	}
	url := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", file.Id)
	c.logger.Info("copied template spreadsheet",
		zap.String("template_id", templateID),
		zap.String("spreadsheet_id", file.Id),
		zap.String("title", title),
	)
	return file.Id, url, nil
}

// Ping verifies the workbook is reachable with the current credentials.
func (c *Client) Ping(ctx context.Context, spreadsheetID string) error {
	_, err := c.svc.Spreadsheets.Get(spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("spreadsheet %q not reachable: %w", spreadsheetID, err)
	}
	return nil
}

// SpreadsheetIDFromURL extracts the spreadsheet ID from a full sheet URL.
// Bare IDs are passed through.
func SpreadsheetIDFromURL(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", fmt.Errorf("empty spreadsheet link")
	}
	if m := spreadsheetURLPattern.FindStringSubmatch(link); m != nil {
		return m[1], nil
	}
	if strings.ContainsAny(link, "/? ") {
		return "", fmt.Errorf("not a spreadsheet link: %q", link)
	}
	return link, nil
}

// ColumnLetter converts a 1-based column index to its A1 letter form.
func ColumnLetter(n int) string {
	if n < 1 {
		return "A"
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
