// Package openai is a small client for OpenAI-compatible model listing and
// image generation endpoints.
package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"imgstudio/internal/utils"
)

// DefaultTimeout applies when no HTTP client is supplied.
const DefaultTimeout = 180 * time.Second

// Client talks to an OpenAI-compatible API with a bearer key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout replaces the client with one using the given timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// NewClient creates a client for baseURL (e.g. https://api.openai.com/v1).
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// ErrUnexpectedResponse reports a 2xx body that does not have the expected shape.
var ErrUnexpectedResponse = errors.New("unexpected response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := gjson.GetBytes(e.Body, "error.message").String()
	if msg == "" {
		msg = string(e.Body)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, msg)
}

// ImageRequest is the payload for POST /images/generations.
type ImageRequest struct {
	Model          string
	Prompt         string
	Size           string
	N              int
	NegativePrompt string
}

// ImageBody builds the JSON body. Empty fields are left out.
func ImageBody(req ImageRequest) ([]byte, error) {
	body := []byte(`{}`)
	fields := []struct {
		path  string
		value any
		set   bool
	}{
		{"model", req.Model, req.Model != ""},
		{"prompt", req.Prompt, true},
		{"size", req.Size, req.Size != ""},
		{"n", req.N, req.N > 0},
		{"response_format", "b64_json", true},
		{"negative_prompt", req.NegativePrompt, req.NegativePrompt != ""},
	}

	var err error
	for _, f := range fields {
		if !f.set {
			continue
		}
		body, err = sjson.SetBytes(body, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", f.path, err)
		}
	}
	return body, nil
}

// ListModels returns the ids reported by GET <base>/models.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "models", nil)
	if err != nil {
		return nil, err
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, fmt.Errorf("%w: models listing has no data array", ErrUnexpectedResponse)
	}

	var ids []string
	data.ForEach(func(_, item gjson.Result) bool {
		if id := item.Get("id").String(); id != "" {
			ids = append(ids, id)
		}
		return true
	})
	return ids, nil
}

// GenerateImages posts an image generation request and returns the base64
// payloads in response order.
func (c *Client) GenerateImages(ctx context.Context, req ImageRequest) ([]string, error) {
	payload, err := ImageBody(req)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, "images/generations", payload)
	if err != nil {
		return nil, err
	}

	var images []string
	gjson.GetBytes(body, "data").ForEach(func(_, item gjson.Result) bool {
		if b64 := item.Get("b64_json").String(); b64 != "" {
			images = append(images, b64)
		}
		return true
	})
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: response contained no images", ErrUnexpectedResponse)
	}
	return images, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, utils.JoinURL(c.baseURL, path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
