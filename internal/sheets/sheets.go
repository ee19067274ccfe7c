// Package sheets appends parsed invoice rows to a Google Sheets
// spreadsheet using a service account.
package sheets

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

var (
	ErrAppendFailed = errors.New("sheet append failed")
)

// Appender appends a single row of values to a named sheet tab.
//
// The server depends on this interface rather than the concrete client so
// handler tests can record appends without touching the network.
type Appender interface {
	Append(ctx context.Context, sheetName string, values []interface{}) error
}

// Client is the production Appender backed by the Sheets v4 API.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewClient builds a Sheets client from a service-account credential file.
// The credential needs the spreadsheets scope and edit access to the
// target spreadsheet.
func NewClient(ctx context.Context, credentialFile, spreadsheetID string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet ID is required")
	}

	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, errors.Wrap(err, "could not create sheets service")
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Append inserts values as a new row at the bottom of sheetName.
//
// Values are written with USER_ENTERED, so numbers and dates land as
// numbers and dates rather than strings, matching rows typed in by hand.
func (c *Client) Append(ctx context.Context, sheetName string, values []interface{}) error {
	body := &gsheets.ValueRange{
		Values: [][]interface{}{values},
	}

	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, appendRange(sheetName), body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(ErrAppendFailed, "sheet %s: %s", sheetName, apiErrorDetail(err))
	}

	if resp.Updates != nil {
		log.Printf("appended row to %s, cells updated: %d", sheetName, resp.Updates.UpdatedCells)
	}
	return nil
}

// appendRange covers the full row width so the API picks the first free
// row regardless of how many columns the tab actually uses.
func appendRange(sheetName string) string {
	return sheetName + "!A:Z"
}

// apiErrorDetail extracts the response body from a googleapi error so the
// reason a write was rejected (bad range, revoked credential, missing
// share) survives into logs and HTTP error details.
func apiErrorDetail(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Body != "" {
		return gerr.Body
	}
	return err.Error()
}
