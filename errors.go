package main

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds handled at the orchestrator boundary. Every one of these
// is converted to a single user-visible message; none propagates as a
// raw internal fault.
var (
	ErrUnsafeInput   = errors.New("potentially unsafe input detected")
	ErrNoStructure   = errors.New("no structured data found in response")
	ErrUnparseable   = errors.New("could not parse the generator response")
	ErrUnclassified  = errors.New("could not determine request type")
	ErrEmptyCommand  = errors.New("failed to generate command")
	ErrEmptyAnswer   = errors.New("failed to generate an answer")
	ErrAuditRejected = errors.New("generated command was rejected")
)

// UserError represents an error that should be displayed to the user with helpful context
type UserError struct {
	Message    string
	Cause      error
	Suggestion string
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// FormatUserError formats an error for user display with colors and suggestions
func FormatUserError(err error) string {
	var sb strings.Builder

	var userErr *UserError
	if errors.As(err, &userErr) {
		sb.WriteString(fmt.Sprintf("\033[91mError:\033[0m %s\n", userErr.Message))
		if userErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("       Cause: %v\n", userErr.Cause))
		}
		if userErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("\n\033[93mSuggestion:\033[0m %s\n", userErr.Suggestion))
		}
	} else {
		errStr := err.Error()
		sb.WriteString(fmt.Sprintf("\033[91mError:\033[0m %s\n", errStr))

		suggestion := getSuggestionForError(errStr)
		if suggestion != "" {
			sb.WriteString(fmt.Sprintf("\n\033[93mSuggestion:\033[0m %s\n", suggestion))
		}
	}

	return sb.String()
}

// getSuggestionForError returns a helpful suggestion based on error content
func getSuggestionForError(errStr string) string {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "api key") {
		return "Set the API key for your provider, e.g. 'export GEMINI_API_KEY=your_key', or switch providers with CMDGEN_PROVIDER."
	}

	if strings.Contains(errLower, "status 401") || strings.Contains(errLower, "status 403") ||
		strings.Contains(errLower, "unauthorized") {
		return "Your API key was not accepted. Check that it is valid and has not expired."
	}

	if strings.Contains(errLower, "status 429") || strings.Contains(errLower, "quota") ||
		strings.Contains(errLower, "throttl") {
		return "You're being rate-limited. Wait a moment and try again, or check your API quota."
	}

	if strings.Contains(errLower, "no valid credential") ||
		strings.Contains(errLower, "unable to sign request") ||
		strings.Contains(errLower, "security token") {
		return "Check your AWS credentials. Run 'aws configure' or set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables."
	}

	if strings.Contains(errLower, "timeout") {
		return "The request timed out. This might be due to a slow network. Try again or check your connection."
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "network") {
		return "Check your network connection. You may be offline or behind a firewall."
	}

	if strings.Contains(errLower, "determine request type") {
		return "Try rephrasing your request, e.g. 'cmdgen find all log files larger than 10MB'."
	}

	if strings.Contains(errLower, "clipboard") {
		return "Clipboard access failed. On Linux, install xclip or xsel; over SSH there may be no clipboard available."
	}

	return ""
}

// Common error constructors

// ErrMissingAPIKey creates an error for a missing provider API key
func ErrMissingAPIKey(provider, envVar string) *UserError {
	return &UserError{
		Message:    fmt.Sprintf("%s API key required", provider),
		Suggestion: fmt.Sprintf("Set the %s environment variable, or choose another provider with CMDGEN_PROVIDER.", envVar),
	}
}

// ErrAWSConfig creates an error for AWS configuration issues
func ErrAWSConfig(cause error) *UserError {
	return &UserError{
		Message: "Failed to initialize AWS configuration",
		Cause:   cause,
		Suggestion: `Check your AWS credentials:
       1. Run 'aws configure' to set up credentials
       2. Or set environment variables:
          export AWS_ACCESS_KEY_ID=your_key
          export AWS_SECRET_ACCESS_KEY=your_secret
          export AWS_REGION=us-east-1`,
	}
}

// ErrBedrockInvoke creates an error for Bedrock API issues
func ErrBedrockInvoke(cause error) *UserError {
	return &UserError{
		Message: "Failed to call Bedrock API",
		Cause:   cause,
		Suggestion: `Possible issues:
       1. Check AWS credentials and region
       2. Verify Bedrock access is enabled in your AWS account
       3. Check IAM permissions for bedrock:InvokeModel
       4. Try a different model with CMDGEN_MODEL`,
	}
}

// ErrGenerator creates an error for a failed generator round-trip
func ErrGenerator(cause error) *UserError {
	return &UserError{
		Message: "Generator request failed",
		Cause:   cause,
	}
}
