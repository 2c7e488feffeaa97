package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"timeos/internal/domain"
)

// Client implements ports.Summarizer using the Gemini generateContent API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL, apiKey, model string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	if model == "" {
		model = "gemini-pro"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// EnhanceDescription rewrites a rough work note into a professional task
// description.
func (c *Client) EnhanceDescription(ctx context.Context, rough string) (string, error) {
	prompt := fmt.Sprintf(`You are a professional business writing assistant. Transform this rough work note into a clear, professional task description. Keep it concise (1-2 sentences) and use professional language.

Rough note: %q

Professional description:`, rough)
	return c.generate(ctx, prompt)
}

// ExecutiveSummary produces a short management summary of the given entries.
func (c *Client) ExecutiveSummary(ctx context.Context, entries []domain.TimeEntry) (string, error) {
	if len(entries) == 0 {
		return "No time entries available to analyze.", nil
	}

	var totalHours float64
	byCompany := make(map[string]float64)
	byUser := make(map[string]float64)
	for _, e := range entries {
		h := e.DecimalHours()
		totalHours += h
		byCompany[e.CompanyName] += h
		byUser[e.UserName] += h
	}

	var sample strings.Builder
	for i, e := range entries {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&sample, "- %s: %s (%.1fh) for %s\n", e.UserName, e.Description, e.DecimalHours(), e.CompanyName)
	}

	prompt := fmt.Sprintf(`You are a management consultant. Analyze these time tracking statistics and provide a concise executive summary (2-3 paragraphs) covering resource allocation, efficiency insights, and key recommendations.

Statistics:
- Total Hours Tracked: %.1f hours
- Number of Entries: %d
- Companies: %s
- Team Members: %s

Recent Tasks Sample:
%s
Executive Summary:`, totalHours, len(entries), formatHours(byCompany), formatHours(byUser), sample.String())

	return c.generate(ctx, prompt)
}

// generate calls POST /v1beta/models/<model>:generateContent?key=...
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("gemini: missing api key")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u.Path = fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	body := rawRequest{
		Contents: []rawContent{{Parts: []rawPart{{Text: prompt}}}},
		GenerationConfig: rawGenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 500,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini: unexpected status %d: %s", resp.StatusCode, string(b))
	}

	var raw rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Candidates) == 0 || len(raw.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: no response generated")
	}
	return strings.TrimSpace(raw.Candidates[0].Content.Parts[0].Text), nil
}

func formatHours(m map[string]float64) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %.1fh; ", k, m[k])
	}
	return strings.TrimSuffix(b.String(), "; ")
}

// rawRequest mirrors the generateContent JSON payload.
type rawRequest struct {
	Contents         []rawContent        `json:"contents"`
	GenerationConfig rawGenerationConfig `json:"generationConfig"`
}

type rawContent struct {
	Parts []rawPart `json:"parts"`
}

type rawPart struct {
	Text string `json:"text"`
}

type rawGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type rawResponse struct {
	Candidates []struct {
		Content rawContent `json:"content"`
	} `json:"candidates"`
}
