package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

var httpClient = &http.Client{}

// PostJSON sends a JSON POST and decodes the response body into out when
// out is non-nil. The raw body is returned for audit logging. The deadline
// on ctx bounds the whole round trip.
func PostJSON(ctx context.Context, url string, payload interface{}, headers map[string]string, out interface{}) ([]byte, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return doJSON(req, out)
}

// GetJSON sends a GET and decodes the response body into out when out is
// non-nil.
func GetJSON(ctx context.Context, url string, headers map[string]string, out interface{}) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return doJSON(req, out)
}

func doJSON(req *http.Request, out interface{}) ([]byte, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return body, fmt.Errorf("upstream returned %d", resp.StatusCode)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return body, fmt.Errorf("decoding response: %w", err)
		}
	}
	return body, nil
}

// IsTimeout reports whether err came from the request deadline elapsing
// rather than an explicit answer from the remote side.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
