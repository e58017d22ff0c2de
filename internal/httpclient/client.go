package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPClient defines the interface for an HTTP client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Exchange POSTs a JSON body and returns the raw response bytes.
//
// The status code is deliberately not checked: upstream providers report
// quota and API errors inside the body of non-2xx replies, and the caller
// classifies those from the body itself. An error here always means the
// exchange did not complete (connection, protocol, or read failure).
func Exchange(ctx context.Context, client HTTPClient, url string, headers map[string]string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	return raw, nil
}
