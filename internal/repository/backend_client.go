package repository

import (
	"bytes"
	apperr "condominio/internal/errors"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BackendClient talks JSON to the condominium REST backend.
type BackendClient struct {
	baseURL string
	http    *http.Client
}

// NewBackendClient builds a client rooted at baseURL (for example
// http://localhost:8000/api/v1). A zero timeout leaves the transport default.
func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type backendCall struct {
	method  string
	path    string
	query   url.Values
	token   string
	body    any
	failMsg string
}

func (c *BackendClient) do(ctx context.Context, call backendCall, out any) error {
	endpoint := c.baseURL + call.path
	if len(call.query) > 0 {
		endpoint += "?" + call.query.Encode()
	}

	var reader io.Reader
	if call.body != nil {
		payload, err := json.Marshal(call.body)
		if err != nil {
			return fmt.Errorf("%s: encoding body: %w", call.failMsg, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", call.failMsg, err)
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if call.token != "" {
		req.Header.Set("Authorization", "Bearer "+call.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Keep context.Canceled reachable through errors.Is.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", call.failMsg, ctxErr)
		}
		return fmt.Errorf("%s: %w", call.failMsg, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", call.failMsg, ctxErr)
		}
		return fmt.Errorf("%s: reading body: %w", call.failMsg, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperr.NewUpstreamError(resp.StatusCode, call.failMsg, extractDetail(raw)).
			WithBody(strings.TrimSpace(string(raw)))
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", call.failMsg, err)
	}
	return nil
}

// extractDetail returns the backend's "detail" text, or "" when the answer is
// not the usual error document.
func extractDetail(raw []byte) string {
	var doc struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &doc); err == nil && len(doc.Detail) > 0 {
		var text string
		if err := json.Unmarshal(doc.Detail, &text); err == nil {
			return text
		}
		return string(doc.Detail)
	}
	return ""
}

// IsNotFound reports a 404 from the backend.
func IsNotFound(err error) bool {
	var httpErr *apperr.HTTPError
	return errors.As(err, &httpErr) && httpErr.Code == http.StatusNotFound
}
