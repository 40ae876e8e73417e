package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// Ensure OpenAIClient implements LLMProvider
var _ LLMProvider = (*OpenAIClient)(nil)

// OpenAIClient implements LLMProvider for OpenAI API
type OpenAIClient struct {
	apiKey       string
	defaultModel string
	httpClient   *http.Client
}

// OpenAIRequest represents a chat completions request
type OpenAIRequest struct {
	Model               string          `json:"model"`
	Messages            []OpenAIMessage `json:"messages"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
}

// OpenAIMessage represents a message in OpenAI format
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIResponse represents a chat completions response
type OpenAIResponse struct {
	Choices []struct {
		Message      OpenAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewOpenAIProvider creates an OpenAIClient as an LLMProvider
func NewOpenAIProvider(cfg *ProviderConfig) (LLMProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey("OpenAI", "OPENAI_API_KEY")
	}

	defaultModel := cfg.Model
	if defaultModel == "" {
		defaultModel = DefaultOpenAIModel
	}

	return &OpenAIClient{
		apiKey:       cfg.APIKey,
		defaultModel: defaultModel,
		httpClient:   &http.Client{},
	}, nil
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "OpenAI"
}

// DefaultModel returns the default model
func (c *OpenAIClient) DefaultModel() string {
	return c.defaultModel
}

// Generate sends a request to the OpenAI API
func (c *OpenAIClient) Generate(ctx context.Context, model, prompt string, maxTokens int) (*GenerateResult, error) {
	if model == "" {
		model = c.defaultModel
	}

	req := OpenAIRequest{
		Model:               model,
		Messages:            []OpenAIMessage{{Role: "user", Content: prompt}},
		MaxCompletionTokens: maxTokens,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", openaiAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

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

	var apiResp OpenAIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	text := apiResp.Choices[0].Message.Content
	if text == "" {
		return nil, fmt.Errorf("model returned empty content (finish_reason: %s)", apiResp.Choices[0].FinishReason)
	}

	return &GenerateResult{
		Text:         text,
		InputTokens:  apiResp.Usage.PromptTokens,
		OutputTokens: apiResp.Usage.CompletionTokens,
	}, nil
}
