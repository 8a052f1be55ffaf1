package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GoogleClient calls the public translate.googleapis.com endpoint, the same
// service the original deployment used. No API key is required; responses are
// the undocumented nested-array payload.
type GoogleClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewGoogleClient creates a client for the given endpoint with the given
// request timeout.
func NewGoogleClient(endpoint string, timeout time.Duration) *GoogleClient {
	return &GoogleClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Translate translates text into the destination language code. The source
// language is auto-detected by the service.
func (c *GoogleClient) Translate(ctx context.Context, text, destCode string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", destCode)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building translate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling translate endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading translate response: %w", err)
	}

	return parseResponse(body)
}

// parseResponse extracts the translated text from the nested-array payload:
// [[["translated","original",...], ...], ...].
func parseResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translate response")
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decoding translate segments: %w", err)
	}

	var out string
	for _, seg := range segments {
		var parts []json.RawMessage
		if err := json.Unmarshal(seg, &parts); err != nil || len(parts) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(parts[0], &piece); err == nil {
			out += piece
		}
	}
	if out == "" {
		return "", fmt.Errorf("translate response contained no text")
	}
	return out, nil
}
