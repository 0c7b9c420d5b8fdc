// README: Roster spreadsheet reader on the Google Sheets API.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// readRange covers the first worksheet; gspread's get_all_records equivalent.
const readRange = "A1:ZZ"

// Client wraps the Google Sheets API service.
type Client struct {
	service *sheets.Service
}

// NewClient creates a read-only Sheets client from service-account JSON.
func NewClient(ctx context.Context, credsJSON []byte) (*Client, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credsJSON),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{service: service}, nil
}

// Records reads the spreadsheet's first worksheet and returns one map per
// data row, keyed by the header row.
func (c *Client) Records(ctx context.Context, spreadsheetID string) ([]map[string]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet values: %w", err)
	}
	return recordsFromRows(resp.Values), nil
}

func recordsFromRows(rows [][]interface{}) []map[string]string {
	if len(rows) < 1 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = fmt.Sprint(cell)
	}
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = fmt.Sprint(row[i])
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}
