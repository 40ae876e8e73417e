package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

// GuardClient talks to an llm-guard API for deep prompt and command
// scanning, layered on top of the built-in pattern checks.
// See: https://github.com/protectai/llm-guard
// Disabled unless LLMGUARD_URL is set.
type GuardClient struct {
	baseURL    string
	httpClient *http.Client
	enabled    bool
}

// guardScanRequest is the request format for /scan/prompt and /scan/output
type guardScanRequest struct {
	Prompt string `json:"prompt,omitempty"`
	Output string `json:"output,omitempty"`
}

// GuardScanResponse is the response from scanning endpoints
type GuardScanResponse struct {
	IsValid bool                   `json:"is_valid"`
	Results map[string]GuardResult `json:"results"`
}

// GuardResult is a single scanner's verdict
type GuardResult struct {
	Score   float64 `json:"score"`
	IsValid bool    `json:"is_valid"`
	Risk    string  `json:"risk,omitempty"`
}

// NewGuardClient creates a guard client from the environment
func NewGuardClient() *GuardClient {
	url := os.Getenv("LLMGUARD_URL")
	if url == "" {
		return &GuardClient{enabled: false}
	}

	return &GuardClient{
		baseURL: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		enabled: true,
	}
}

// IsEnabled reports whether scanning is configured
func (c *GuardClient) IsEnabled() bool {
	return c.enabled
}

// ScanPrompt scans a user request for prompt injection and secrets
func (c *GuardClient) ScanPrompt(ctx context.Context, prompt string) (*GuardScanResponse, error) {
	if !c.enabled {
		return &GuardScanResponse{IsValid: true}, nil
	}
	return c.doScan(ctx, "/scan/prompt", guardScanRequest{Prompt: prompt})
}

// ScanCommand scans a generated command before it is delivered
func (c *GuardClient) ScanCommand(ctx context.Context, command string) (*GuardScanResponse, error) {
	if !c.enabled {
		return &GuardScanResponse{IsValid: true}, nil
	}
	return c.doScan(ctx, "/scan/output", guardScanRequest{Output: command})
}

func (c *GuardClient) doScan(ctx context.Context, endpoint string, req guardScanRequest) (*GuardScanResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if token := os.Getenv("LLMGUARD_TOKEN"); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("llm-guard request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm-guard returned status %d", resp.StatusCode)
	}

	var result GuardScanResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// FormatScanIssues formats failed scanner results as one warning string,
// empty when the scan passed
func FormatScanIssues(resp *GuardScanResponse) string {
	if resp == nil || resp.IsValid {
		return ""
	}

	var issues []string
	for scanner, result := range resp.Results {
		if result.IsValid {
			continue
		}
		issue := fmt.Sprintf("- %s: score=%.2f", scanner, result.Score)
		if result.Risk != "" {
			issue += fmt.Sprintf(" (%s)", result.Risk)
		}
		issues = append(issues, issue)
	}
	if len(issues) == 0 {
		return ""
	}
	sort.Strings(issues)

	return "Security scan detected issues:\n" + strings.Join(issues, "\n")
}
