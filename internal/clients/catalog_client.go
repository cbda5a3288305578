// internal/clients/catalog_client.go
package clients

import (
	"context"
	"net/http"

	"fitnexus/internal/catalog"
)

type CatalogClient struct {
	base
}

func NewCatalogClient(baseURL string, httpClient *http.Client) *CatalogClient {
	return &CatalogClient{base: newBase(baseURL, httpClient)}
}

// AddSessionRequest is the body of POST /sessions. Timeslot may be empty.
type AddSessionRequest struct {
	ClassType  string `json:"class_type"`
	Instructor string `json:"instructor"`
	Timeslot   string `json:"timeslot,omitempty"`
	Location   string `json:"location"`
}

func (c *CatalogClient) AddSession(ctx context.Context, req AddSessionRequest) (*catalog.SessionView, error) {
	var session catalog.SessionView
	if err := c.do(ctx, http.MethodPost, "/sessions", nil, req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *CatalogClient) ListSessions(ctx context.Context) ([]catalog.SessionView, error) {
	var sessions []catalog.SessionView
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
