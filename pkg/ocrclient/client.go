// Package ocrclient is the HTTP adapter for the external OCR engine. The
// engine is a black box: it accepts an image payload and returns plain
// recognized text (UTF-8, mixed Latin/CJK). It may fail or hang, so every
// call runs under the caller's context.
package ocrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client posts images to a recognition endpoint and returns the raw text.
type Client struct {
	endpoint string
	http     *http.Client
}

// New builds a client for the given endpoint. The HTTP client carries no
// timeout of its own; cancellation comes from the request context so callers
// control the per-invocation budget.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{},
	}
}

type recognizeResponse struct {
	Text string `json:"text"`
}

// Recognize submits the image and returns the recognized text. Any non-200
// status or transport failure is returned as an error; interpreting the text
// (including empty text) is the parser's job.
func (c *Client) Recognize(ctx context.Context, image []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr engine call after %s: %w", time.Since(start).Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ocr engine: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var out recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ocr engine: decode response: %w", err)
	}
	return out.Text, nil
}
