// Package gemini implements the AI extraction collaborator on top of the
// Gemini generateContent API: free-text recipe parsing, price estimates
// and baking advice.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jin0205/sourdough-pro-ai/internal/logger"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
)

// ── Wire types ───────────────────────────────────────────────────

type payload struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type apiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithBaseURL points the client at a different API host. Used by tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a Gemini client. An empty apiKey is allowed; every
// call then fails with a missing-credentials error, which the caller can
// surface as "configure a key" rather than a crash.
func NewClient(apiKey string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   defaultModel,
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// generate sends one prompt and returns the model's text reply. jsonMode
// asks the API to emit raw JSON without prose or fences.
func (c *Client) generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	if c.apiKey == "" {
		return "", errorf(KindMissingCredentials, nil, "no API key configured")
	}

	body := payload{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if jsonMode {
		body.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", errorf(KindUnknown, err, "marshal payload")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", errorf(KindUnknown, err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.log.Debug("gemini: POST %s (%d bytes)", url, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errorf(KindNetwork, err, "request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errorf(KindNetwork, err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", errorf(KindUnknown, nil, "API %s: %s", resp.Status, truncate(string(respBody), 200))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", errorf(KindInvalidResponse, err, "unmarshal response")
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errorf(KindInvalidResponse, nil, "empty response (no candidates)")
	}

	reply := result.Candidates[0].Content.Parts[0].Text
	c.log.Debug("gemini: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}

// stripFences removes a markdown code fence if the model added one
// despite JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
