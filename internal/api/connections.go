package api

import (
	"context"
	"net/http"

	"querydesk/pkg/querytypes"
)

// CreateConnection registers a new database connection. The password travels
// in the request and is never returned.
func (c *Client) CreateConnection(ctx context.Context, req querytypes.ConnectionRequest) (*querytypes.DatabaseConnection, error) {
	var conn querytypes.DatabaseConnection
	if err := c.do(ctx, http.MethodPost, "/api/database-connections", req, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

// ListConnections returns all registered database connections.
func (c *Client) ListConnections(ctx context.Context) ([]querytypes.DatabaseConnection, error) {
	var conns []querytypes.DatabaseConnection
	if err := c.do(ctx, http.MethodGet, "/api/database-connections", nil, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

// UpdateConnection mutates an existing connection identified by its
// server-assigned id.
func (c *Client) UpdateConnection(ctx context.Context, id string, req querytypes.ConnectionRequest) (*querytypes.DatabaseConnection, error) {
	var conn querytypes.DatabaseConnection
	if err := c.do(ctx, http.MethodPut, "/api/database-connections/"+id, req, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

// DeleteConnection removes a connection.
func (c *Client) DeleteConnection(ctx context.Context, id string) (*querytypes.StatusMessage, error) {
	var msg querytypes.StatusMessage
	if err := c.do(ctx, http.MethodDelete, "/api/database-connections/"+id, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// TestConnection probes a stored connection and reports status + message.
func (c *Client) TestConnection(ctx context.Context, id string) (*querytypes.ConnectionTestResult, error) {
	var result querytypes.ConnectionTestResult
	if err := c.do(ctx, http.MethodPost, "/api/database-connections/"+id+"/test", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Tables lists the tables visible through one connection.
func (c *Client) Tables(ctx context.Context, id string) (*querytypes.TableSet, error) {
	var tables querytypes.TableSet
	if err := c.do(ctx, http.MethodGet, "/api/tables/"+id, nil, &tables); err != nil {
		return nil, err
	}
	return &tables, nil
}

// Columns lists the columns visible through one connection.
func (c *Client) Columns(ctx context.Context, id string) (*querytypes.ColumnSet, error) {
	var columns querytypes.ColumnSet
	if err := c.do(ctx, http.MethodGet, "/api/columns/"+id, nil, &columns); err != nil {
		return nil, err
	}
	return &columns, nil
}
