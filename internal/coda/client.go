// Package coda is a read-only client for the Coda tables API.
package coda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/jmylchreest/studio/internal/util/http"
)

// DefaultBaseURL is the public Coda API endpoint.
const DefaultBaseURL = "https://coda.io/apis/v1"

// maxPages bounds row pagination.
const maxPages = 50

var (
	// ErrNotFound is returned when the API reports a missing document, table or row.
	ErrNotFound = errors.New("not found")

	// ErrTooManyPages is returned when a listing still has pages after maxPages.
	// Partial listings are never returned.
	ErrTooManyPages = errors.New("too many pages")
)

// Error describes a failed API call.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("coda %s: HTTP %d: %s", e.Op, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("coda %s: HTTP %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("coda %s: %v", e.Op, e.Err)
	}
	return "coda " + e.Op + " failed"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Row is one table row. Values are keyed by column id.
type Row struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Values map[string]any `json:"values"`
}

// Column is a table column as reported by the API.
type Column struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string
	DocID   string
	TableID string
	Timeout time.Duration
	Logger  hclog.Logger
}

// Client reads rows and columns from a single table.
type Client struct {
	baseURL string
	token   string
	docID   string
	tableID string
	timeout time.Duration
	logger  hclog.Logger
}

// New creates a Client. Token, DocID and TableID are required.
func New(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("coda: token is required")
	}
	if opts.DocID == "" {
		return nil, fmt.Errorf("coda: document id is required")
	}
	if opts.TableID == "" {
		return nil, fmt.Errorf("coda: table id is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		docID:   opts.DocID,
		tableID: opts.TableID,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}, nil
}

type rowsPage struct {
	Items         []Row  `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

type columnsPage struct {
	Items         []Column `json:"items"`
	NextPageToken string   `json:"nextPageToken"`
}

type apiError struct {
	StatusCode    int    `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	Message       string `json:"message"`
}

// ListRows returns every row in the table with simple value formatting.
func (c *Client) ListRows(ctx context.Context) ([]Row, error) {
	rows := make([]Row, 0)
	token := ""
	for page := 0; ; page++ {
		if page == maxPages {
			return nil, &Error{Op: "list rows", Err: fmt.Errorf("%w: more than %d", ErrTooManyPages, maxPages)}
		}
		query := url.Values{"valueFormat": {"simple"}}
		if token != "" {
			query.Set("pageToken", token)
		}

		var resp rowsPage
		if err := c.get(ctx, "list rows", c.tablePath("rows"), query, &resp); err != nil {
			return nil, err
		}
		rows = append(rows, resp.Items...)

		if resp.NextPageToken == "" {
			break
		}
		token = resp.NextPageToken
	}

	c.logger.Debug("listed rows", "table", c.tableID, "count", len(rows))
	return rows, nil
}

// GetRow returns one row by id or name. A missing row yields ErrNotFound.
func (c *Client) GetRow(ctx context.Context, id string) (*Row, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &Error{Op: "get row", Status: http.StatusNotFound, Err: ErrNotFound}
	}

	var row Row
	query := url.Values{"valueFormat": {"simple"}}
	if err := c.get(ctx, "get row", c.tablePath("rows", id), query, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// ListColumns returns the table's columns.
func (c *Client) ListColumns(ctx context.Context) ([]Column, error) {
	columns := make([]Column, 0)
	token := ""
	for page := 0; ; page++ {
		if page == maxPages {
			return nil, &Error{Op: "list columns", Err: fmt.Errorf("%w: more than %d", ErrTooManyPages, maxPages)}
		}
		query := url.Values{}
		if token != "" {
			query.Set("pageToken", token)
		}

		var resp columnsPage
		if err := c.get(ctx, "list columns", c.tablePath("columns"), query, &resp); err != nil {
			return nil, err
		}
		columns = append(columns, resp.Items...)

		if resp.NextPageToken == "" {
			break
		}
		token = resp.NextPageToken
	}
	return columns, nil
}

func (c *Client) tablePath(parts ...string) string {
	segments := []string{c.baseURL, "docs", url.PathEscape(c.docID), "tables", url.PathEscape(c.tableID)}
	for _, p := range parts {
		segments = append(segments, url.PathEscape(p))
	}
	return strings.Join(segments, "/")
}

func (c *Client) get(ctx context.Context, op, endpoint string, query url.Values, out any) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	start := time.Now()
	data, err := httputil.Fetch(ctx, endpoint, httputil.FetchOptions{
		Timeout: c.timeout,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.token,
			"Accept":        "application/json",
		},
	})
	if err != nil {
		c.logger.Debug("request failed", "op", op, "duration", time.Since(start), "error", err)
		return c.wrap(op, err)
	}
	c.logger.Trace("request complete", "op", op, "duration", time.Since(start), "bytes", len(data))

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Message: "invalid response body", Err: err}
	}
	return nil
}

func (c *Client) wrap(op string, err error) error {
	var statusErr *httputil.StatusError
	if !errors.As(err, &statusErr) {
		return &Error{Op: op, Err: err}
	}

	e := &Error{Op: op, Status: statusErr.StatusCode, Err: err}
	var body apiError
	if json.Unmarshal(statusErr.Body, &body) == nil {
		e.Message = body.Message
		if e.Message == "" {
			e.Message = body.StatusMessage
		}
	}
	if statusErr.StatusCode == http.StatusNotFound {
		e.Err = ErrNotFound
	}
	return e
}
