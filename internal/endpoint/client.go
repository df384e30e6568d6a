// Package endpoint talks to the site store endpoint: one URL answering
// GET ?action=getConfig with the raw document and POST with a JSON body that
// either saves the document or appends a lead row.
package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ContentType avoids a CORS preflight when the endpoint is called from a browser.
const ContentType = "text/plain;charset=utf-8"

var (
	ErrEndpointNotConfigured = errors.New("endpoint: url not configured")
	ErrInvalidResponse       = errors.New("endpoint: invalid response from server")
)

// StatusError reports a non-2xx answer.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("endpoint: HTTP error %d", e.Code)
}

// RemoteError is a well-formed reply whose result is not "success".
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "endpoint: " + e.Message
}

// Result is the reply body of every POST.
type Result struct {
	Result  string `json:"result"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimSpace(baseURL), HTTP: httpClient}
}

func (c *Client) Configured() bool {
	return c != nil && c.BaseURL != ""
}

// GetConfig returns the raw document text. The body is not interpreted.
func (c *Client) GetConfig(ctx context.Context) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrEndpointNotConfigured
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("endpoint: parse url: %w", err)
	}
	q := u.Query()
	q.Set("action", "getConfig")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// Post sends payload as JSON and decodes the result envelope.
func (c *Client) Post(ctx context.Context, payload any) (Result, error) {
	var res Result
	if !c.Configured() {
		return res, ErrEndpointNotConfigured
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return res, fmt.Errorf("endpoint: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return res, err
	}
	req.Header.Set("Content-Type", ContentType)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return res, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return res, &StatusError{Code: resp.StatusCode}
	}
	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(text, &res); err != nil {
		return res, ErrInvalidResponse
	}
	if res.Result != "success" {
		msg := res.Error
		if msg == "" {
			msg = "Unknown error"
		}
		return res, &RemoteError{Message: msg}
	}
	return res, nil
}
