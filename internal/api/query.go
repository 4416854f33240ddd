package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"querydesk/pkg/querytypes"
)

// SubmitQuery sends a natural-language question against the selected
// connections and returns the backend's outcome.
func (c *Client) SubmitQuery(ctx context.Context, req querytypes.QueryRequest) (*querytypes.QueryResponse, error) {
	var resp querytypes.QueryResponse
	if err := c.do(ctx, http.MethodPost, "/api/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendEmail asks the backend to mail a stored result to a recipient. The
// chat history id is the correlation identifier carried by a replayed or
// stored conversation turn.
func (c *Client) SendEmail(ctx context.Context, req querytypes.EmailRequest) (*querytypes.EmailReceipt, error) {
	var receipt querytypes.EmailReceipt
	if err := c.do(ctx, http.MethodPost, "/api/send-email", req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// History fetches the ordered persisted conversation records for one page
// context, newest-last as the backend stores them.
func (c *Client) History(ctx context.Context, pageName string, limit int) ([]querytypes.HistoryRecord, error) {
	params := url.Values{}
	params.Set("page_name", pageName)
	params.Set("limit", strconv.Itoa(limit))

	var records []querytypes.HistoryRecord
	if err := c.do(ctx, http.MethodGet, "/api/chat/history?"+params.Encode(), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
