package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Gemini API URL template (model is inserted)
const geminiAPIURLTemplate = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// Ensure GeminiClient implements LLMProvider
var _ LLMProvider = (*GeminiClient)(nil)

// GeminiClient implements LLMProvider for Google Gemini API
type GeminiClient struct {
	apiKey       string
	defaultModel string
	httpClient   *http.Client
}

// GeminiRequest represents a request to the Gemini API
type GeminiRequest struct {
	Contents         []GeminiContent         `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

// GeminiContent represents a content block in Gemini format
type GeminiContent struct {
	Role  string       `json:"role"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of content
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiGenerationConfig contains generation parameters
type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GeminiResponse represents a response from the Gemini API
type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
			Role string `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// NewGeminiProvider creates a GeminiClient as an LLMProvider
func NewGeminiProvider(cfg *ProviderConfig) (LLMProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey("Gemini", "GEMINI_API_KEY")
	}

	defaultModel := cfg.Model
	if defaultModel == "" {
		defaultModel = DefaultGeminiModel
	}

	return &GeminiClient{
		apiKey:       cfg.APIKey,
		defaultModel: defaultModel,
		httpClient:   &http.Client{},
	}, nil
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return "Google Gemini"
}

// DefaultModel returns the default model
func (c *GeminiClient) DefaultModel() string {
	return c.defaultModel
}

// Generate sends a request to the Gemini API
func (c *GeminiClient) Generate(ctx context.Context, model, prompt string, maxTokens int) (*GenerateResult, error) {
	if model == "" {
		model = c.defaultModel
	}

	url := fmt.Sprintf(geminiAPIURLTemplate, model) + "?key=" + c.apiKey

	req := GeminiRequest{
		Contents: []GeminiContent{
			{Role: "user", Parts: []GeminiPart{{Text: prompt}}},
		},
		GenerationConfig: &GeminiGenerationConfig{
			MaxOutputTokens: maxTokens,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

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

	var apiResp GeminiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(apiResp.Candidates) == 0 {
		return nil, fmt.Errorf("model returned no candidates")
	}

	var text string
	for _, part := range apiResp.Candidates[0].Content.Parts {
		text += part.Text
	}

	if text == "" {
		return nil, fmt.Errorf("model returned empty content (finish_reason: %s)", apiResp.Candidates[0].FinishReason)
	}

	return &GenerateResult{
		Text:         text,
		InputTokens:  apiResp.UsageMetadata.PromptTokenCount,
		OutputTokens: apiResp.UsageMetadata.CandidatesTokenCount,
	}, nil
}
