// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package translator proxies machine translation of post content through
// an OpenAI-compatible chat completions API. The server holds the API
// key; clients never see it.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/containerd/errdefs"
)

// ErrNotConfigured is returned when no API key is set. It classifies as
// failed precondition (HTTP 503): the service is disabled until ops sets
// the key, distinct from an upstream that was called and failed (502).
var ErrNotConfigured = fmt.Errorf("%w: translation service is not configured, set OPENAI_API_KEY", errdefs.ErrFailedPrecondition)

// RequestError wraps an upstream failure, carrying the upstream status
// code when one was received (0 for transport errors). It unwraps to
// errdefs.ErrUnavailable so the HTTP layer maps it to 502.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("translation upstream error (status %d): %s", e.StatusCode, e.Message)
	}
	return "translation upstream unreachable: " + e.Message
}

func (e *RequestError) Unwrap() error { return errdefs.ErrUnavailable }

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	systemPrompt = "You are a translation assistant for a technical blog. " +
		"Preserve Markdown or HTML formatting when asked, keep links and code " +
		"intact, and strip all markup when plain text is requested. Never invent content."
)

// Config holds the translator settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client calls the chat completions endpoint to translate text.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a translation client. An empty API key is allowed;
// Translate then fails with ErrNotConfigured.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.config.APIKey) != ""
}

// Request describes one translation call.
type Request struct {
	Text           string
	TargetLanguage string
	SourceLanguage string // empty means auto-detect
	Format         string // "markdown" (default), "html" or "plain"
}

// Result carries the translated text.
type Result struct {
	Translation    string `json:"translation"`
	TargetLanguage string `json:"target_language"`
	Model          string `json:"model"`
}

// Translate sends the text to the upstream model and returns the
// translation. Upstream failures come back as *RequestError.
func (c *Client) Translate(ctx context.Context, req Request) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body := chatRequest{
		Model:       c.config.Model,
		Temperature: 0.2,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("translate marshal: %w", err)
	}

	url := c.config.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("translate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Message: "reading upstream response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    upstreamDetail(respBody),
		}
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &RequestError{Message: "invalid upstream payload"}
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return nil, &RequestError{Message: "upstream returned no translation"}
	}

	return &Result{
		Translation:    strings.TrimSpace(result.Choices[0].Message.Content),
		TargetLanguage: normalizeLang(req.TargetLanguage),
		Model:          c.config.Model,
	}, nil
}

// buildPrompt assembles the user message: language pair, format
// instruction, then the text itself.
func buildPrompt(req Request) string {
	source := normalizeLang(req.SourceLanguage)
	if source == "" {
		source = "auto-detected"
	}
	target := normalizeLang(req.TargetLanguage)

	lines := []string{
		"Source language: " + source + ".",
		"Target language: " + target + ".",
		formatInstruction(req.Format),
		"Translate the following content without adding commentary or notes.",
		"Return only the translated text, without quotes or remarks.",
		"Text:",
		req.Text,
	}
	return strings.Join(lines, "\n")
}

func formatInstruction(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "plain":
		return "Output format: plain text without tags or Markdown."
	case "html":
		return "Format to preserve: HTML."
	default:
		return "Format to preserve: Markdown."
	}
}

func normalizeLang(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// upstreamDetail extracts the error message from an OpenAI-style error
// payload, falling back to a generic line.
func upstreamDetail(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Error.Message); msg != "" {
			return msg
		}
	}
	return "upstream could not process the translation request"
}

// --- chat completions request/response types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
