package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mandalart/internal/auth"
	"mandalart/internal/mandalart"
)

// APIClient talks to the mandalart server, authenticating with the session cookie
type APIClient struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

func NewAPIClient(baseURL, sessionID string) *APIClient {
	return &APIClient{
		baseURL:   baseURL,
		sessionID: sessionID,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// ListDocuments fetches the user's documents, newest first, optionally by year
func (c *APIClient) ListDocuments(ctx context.Context, year string) ([]mandalart.DocumentResponse, error) {
	endpoint := c.baseURL + "/api/mandalart"
	if year != "" {
		endpoint += "?year=" + url.QueryEscape(year)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.attachSession(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf(
			"list documents error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	var documents []mandalart.DocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&documents); err != nil {
		return nil, err
	}

	return documents, nil
}

type saveRequest struct {
	ID         string           `json:"id,omitempty"`
	Year       string           `json:"year"`
	Title      string           `json:"title"`
	Keyword    string           `json:"keyword"`
	Commitment string           `json:"commitment"`
	Cells      []mandalart.Cell `json:"cells"`
}

type saveResponse struct {
	ID string `json:"id"`
}

// SaveDocument pushes the full document state; id may be empty for a first save.
// Returns the server-side id of the saved row.
func (c *APIClient) SaveDocument(ctx context.Context, id string, doc mandalart.Document) (string, error) {
	payload := saveRequest{
		ID:         id,
		Year:       doc.Year,
		Title:      doc.Title,
		Keyword:    doc.Keyword,
		Commitment: doc.Commitment,
		Cells:      doc.Cells,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/mandalart",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	c.attachSession(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf(
			"save document error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	var result saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.ID, nil
}

// DeleteDocument removes a server-side document by id
func (c *APIClient) DeleteDocument(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodDelete,
		c.baseURL+"/api/mandalart/"+url.PathEscape(id),
		nil,
	)
	if err != nil {
		return err
	}
	c.attachSession(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf(
			"delete document error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	return nil
}

func (c *APIClient) attachSession(req *http.Request) {
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: c.sessionID})
	}
}
