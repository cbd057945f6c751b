// Package playground is the HTTP client for the generation service.
// Every call maps failures onto the client error taxonomy: context
// deadline -> timeout, unreachable transport -> transport, structured
// server failure -> service.
package playground

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "playground-client/internal/errors"
	"playground-client/internal/logger"
)

// API is the surface the orchestrator and hydrator depend on.
type API interface {
	// Generate issues a single generation request.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// SynthesizeVoice converts text to speech and returns the decoded mp3.
	SynthesizeVoice(ctx context.Context, userID, text, lang string) ([]byte, error)

	// UserStats fetches the authoritative usage counters.
	UserStats(ctx context.Context, userID string) (*UsageStats, error)

	// History fetches the user's past generations, most recent first.
	History(ctx context.Context, userID string) ([]HistoryEntry, error)

	// CommunityPrompts fetches the community prompt directory.
	CommunityPrompts(ctx context.Context) ([]CommunityPrompt, error)

	// Sponsors fetches the sponsor directory.
	Sponsors(ctx context.Context) ([]Sponsor, error)

	// SharePrompt submits a prompt to the community directory.
	SharePrompt(ctx context.Context, req SharePromptRequest) error

	// Recreate asks the server to decode a fingerprint.
	Recreate(ctx context.Context, dna string) (*DecodedDNA, error)

	// Analytics fetches the server-wide usage summary.
	Analytics(ctx context.Context) (*Analytics, error)

	// Health checks the server.
	Health(ctx context.Context) (*Health, error)
}

// Client implements API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the playground server at baseURL.
// Per-call deadlines come from the caller's context; requestTimeout is
// the fallback bound for calls without one.
func NewClient(baseURL string, requestTimeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// errorResponse is the server's structured failure body.
type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, out interface{}) error {
	var body io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		body = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(apperrors.KindTransport, "reading response from "+path, err)
	}

	if resp.StatusCode != http.StatusOK {
		var serverErr errorResponse
		if json.Unmarshal(raw, &serverErr) == nil && serverErr.Error != "" {
			return apperrors.New(apperrors.KindService, serverErr.Error)
		}
		return apperrors.Newf(apperrors.KindService, "server returned status %d for %s", resp.StatusCode, path)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperrors.Wrap(apperrors.KindService, "decoding response from "+path, err)
		}
	}

	return nil
}

// classifyTransportError separates deadline expiry from plain
// unreachability.
func classifyTransportError(path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.KindTimeout, "request to "+path+" timed out", err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apperrors.Wrap(apperrors.KindTimeout, "request to "+path+" timed out", err)
	}
	return apperrors.Wrap(apperrors.KindTransport, "request to "+path+" failed", err)
}

// Generate issues a single generation request to POST /trip.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	logger.Log.WithFields(logrus.Fields{
		"model":         req.Model,
		"temp":          req.Temp,
		"top_p":         req.TopP,
		"prompt_length": len(req.Prompt),
	}).Info("Calling generation endpoint")

	var resp GenerateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/trip", req, &resp); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"output_length":   len(resp.Output),
		"generation_time": resp.GenerationTime,
	}).Debug("Generation completed")

	return &resp, nil
}

// SynthesizeVoice calls POST /voice and decodes the base64 mp3 payload.
func (c *Client) SynthesizeVoice(ctx context.Context, userID, text, lang string) ([]byte, error) {
	reqBody := map[string]string{
		"user_id": userID,
		"text":    text,
		"lang":    lang,
	}

	var resp struct {
		MP3 string `json:"mp3"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/voice", reqBody, &resp); err != nil {
		return nil, err
	}

	audio, err := base64.StdEncoding.DecodeString(resp.MP3)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindService, "decoding voice payload", err)
	}

	logger.Log.WithField("audio_bytes", len(audio)).Debug("Voice synthesis completed")
	return audio, nil
}

// UserStats calls GET /user/stats.
func (c *Client) UserStats(ctx context.Context, userID string) (*UsageStats, error) {
	var stats UsageStats
	path := "/user/stats?user_id=" + url.QueryEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// History calls GET /history. Entries come back most recent first.
func (c *Client) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	var resp struct {
		History []HistoryEntry `json:"history"`
	}
	path := "/history?user_id=" + url.QueryEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// CommunityPrompts calls GET /community/prompts.
func (c *Client) CommunityPrompts(ctx context.Context) ([]CommunityPrompt, error) {
	var resp struct {
		Prompts []CommunityPrompt `json:"prompts"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/community/prompts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Prompts, nil
}

// Sponsors calls GET /sponsors.
func (c *Client) Sponsors(ctx context.Context) ([]Sponsor, error) {
	var resp struct {
		Sponsors []Sponsor `json:"sponsors"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/sponsors", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sponsors, nil
}

// SharePrompt calls POST /share/prompt.
func (c *Client) SharePrompt(ctx context.Context, req SharePromptRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/share/prompt", req, nil)
}

// Recreate calls POST /recreate to decode a fingerprint server-side.
func (c *Client) Recreate(ctx context.Context, dna string) (*DecodedDNA, error) {
	reqBody := map[string]string{"dna": dna}

	var decoded DecodedDNA
	if err := c.doJSON(ctx, http.MethodPost, "/recreate", reqBody, &decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}

// Analytics calls GET /analytics.
func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	var analytics Analytics
	if err := c.doJSON(ctx, http.MethodGet, "/analytics", nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
