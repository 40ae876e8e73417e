package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Ensure BedrockClient implements LLMProvider
var _ LLMProvider = (*BedrockClient)(nil)

// BedrockClient implements LLMProvider via AWS Bedrock Runtime
type BedrockClient struct {
	client       *bedrockruntime.Client
	defaultModel string
}

// ClaudeRequest represents the request body for Claude models on Bedrock
type ClaudeRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []AnthropicMessage `json:"messages"`
}

// ClaudeResponse represents the response from Claude models on Bedrock
type ClaudeResponse struct {
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

// NewBedrockProvider creates a BedrockClient with credentials from the environment
func NewBedrockProvider(ctx context.Context, pcfg *ProviderConfig) (LLMProvider, error) {
	region := pcfg.Region
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, ErrAWSConfig(err)
	}

	defaultModel := pcfg.Model
	if defaultModel == "" {
		defaultModel = DefaultBedrockModel
	}

	return &BedrockClient{
		client:       bedrockruntime.NewFromConfig(cfg),
		defaultModel: defaultModel,
	}, nil
}

// Name returns the provider name
func (b *BedrockClient) Name() string {
	return "AWS Bedrock"
}

// DefaultModel returns the default model ID
func (b *BedrockClient) DefaultModel() string {
	return b.defaultModel
}

// Generate sends a prompt to a Claude model on Bedrock
func (b *BedrockClient) Generate(ctx context.Context, model, prompt string, maxTokens int) (*GenerateResult, error) {
	if model == "" {
		model = b.defaultModel
	}

	request := ClaudeRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        maxTokens,
		Messages:         []AnthropicMessage{{Role: "user", Content: prompt}},
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(model),
		Body:        requestBody,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, ErrBedrockInvoke(err)
	}

	var response ClaudeResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var text string
	for _, content := range response.Content {
		if content.Type == "text" {
			text += content.Text
		}
	}

	if text == "" {
		return nil, fmt.Errorf("model returned empty content (stop_reason: %s)", response.StopReason)
	}

	return &GenerateResult{
		Text:         text,
		InputTokens:  response.Usage.InputTokens,
		OutputTokens: response.Usage.OutputTokens,
	}, nil
}
