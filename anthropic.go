package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// Ensure AnthropicClient implements LLMProvider
var _ LLMProvider = (*AnthropicClient)(nil)

// AnthropicClient implements LLMProvider for the Anthropic Messages API
type AnthropicClient struct {
	apiKey       string
	defaultModel string
	httpClient   *http.Client
}

// AnthropicRequest represents a messages request
type AnthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []AnthropicMessage `json:"messages"`
}

// AnthropicMessage represents a message in Anthropic format
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicResponse represents a messages response
type AnthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewAnthropicProvider creates an AnthropicClient as an LLMProvider
func NewAnthropicProvider(cfg *ProviderConfig) (LLMProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey("Anthropic", "ANTHROPIC_API_KEY")
	}

	defaultModel := cfg.Model
	if defaultModel == "" {
		defaultModel = DefaultAnthropicModel
	}

	return &AnthropicClient{
		apiKey:       cfg.APIKey,
		defaultModel: defaultModel,
		httpClient:   &http.Client{},
	}, nil
}

// Name returns the provider name
func (c *AnthropicClient) Name() string {
	return "Anthropic"
}

// DefaultModel returns the default model
func (c *AnthropicClient) DefaultModel() string {
	return c.defaultModel
}

// Generate sends a request to the Anthropic API
func (c *AnthropicClient) Generate(ctx context.Context, model, prompt string, maxTokens int) (*GenerateResult, error) {
	if model == "" {
		model = c.defaultModel
	}

	req := AnthropicRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  []AnthropicMessage{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", anthropicAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp AnthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var text string
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	if text == "" {
		return nil, fmt.Errorf("model returned empty content (stop_reason: %s)", apiResp.StopReason)
	}

	return &GenerateResult{
		Text:         text,
		InputTokens:  apiResp.Usage.InputTokens,
		OutputTokens: apiResp.Usage.OutputTokens,
	}, nil
}
