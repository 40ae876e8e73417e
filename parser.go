package main

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// AnalysisResult is the structured outcome of the analysis call.
// Exactly one of IsCommandRequest / IsQuestion is expected to be set;
// the orchestrator treats neither-set as an unclassified request.
type AnalysisResult struct {
	IsCommandRequest bool     `json:"is_command_request"`
	Command          string   `json:"command"`
	Description      string   `json:"description"`
	RequiresInput    bool     `json:"requires_input"`
	Inputs           []string `json:"inputs"`
	InputDescription string   `json:"input_description"`
	IsQuestion       bool     `json:"is_question"`
	Answer           string   `json:"answer"`
}

// FinalizationResult is the structured outcome of the finalization call
type FinalizationResult struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// ParseFailure reports an unrecoverable generator response. Raw and
// Repaired are kept for debug display only and must never be shown to
// the user in normal mode.
type ParseFailure struct {
	Err      error
	Raw      string
	Repaired string
}

func (e *ParseFailure) Error() string {
	return e.Err.Error()
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}

// ExtractObject pulls the JSON-like span out of raw generator text.
// Generators often wrap their object in prose or code fences, so the
// span between the first '{' and the last '}' is taken greedily.
func ExtractObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1], true
	}

	// No braces at all: the response may already be strict JSON
	trimmed := strings.TrimSpace(raw)
	if json.Valid([]byte(trimmed)) {
		return trimmed, true
	}

	return "", false
}

// ParseResponse recovers a generic object from raw generator text.
// Recovery attempts run in order, stopping at the first success:
// strict parse, quote/literal repair, permissive literal evaluation.
func ParseResponse(raw string) (map[string]any, *ParseFailure) {
	span, ok := ExtractObject(raw)
	if !ok {
		return nil, &ParseFailure{Err: ErrNoStructure, Raw: raw}
	}

	if obj, err := decodeStrict(span); err == nil {
		return obj, nil
	}

	repaired := RepairJSON(span)
	if obj, err := decodeStrict(repaired); err == nil {
		return obj, nil
	}

	if v, err := evalLoose(span); err == nil {
		if obj, err := canonicalize(v); err == nil {
			return obj, nil
		}
	}

	return nil, &ParseFailure{Err: ErrUnparseable, Raw: raw, Repaired: repaired}
}

// ParseAnalysis parses raw generator text into an AnalysisResult
func ParseAnalysis(raw string) (*AnalysisResult, error) {
	obj, fail := ParseResponse(raw)
	if fail != nil {
		return nil, fail
	}

	return &AnalysisResult{
		IsCommandRequest: boolField(obj, "is_command_request"),
		Command:          stringField(obj, "command"),
		Description:      stringField(obj, "description"),
		RequiresInput:    boolField(obj, "requires_input"),
		Inputs:           stringSliceField(obj, "inputs"),
		InputDescription: stringField(obj, "input_description"),
		IsQuestion:       boolField(obj, "is_question"),
		Answer:           stringField(obj, "answer"),
	}, nil
}

// ParseFinalization parses raw generator text into a FinalizationResult
func ParseFinalization(raw string) (*FinalizationResult, error) {
	obj, fail := ParseResponse(raw)
	if fail != nil {
		return nil, fail
	}

	return &FinalizationResult{
		Command:     stringField(obj, "command"),
		Description: stringField(obj, "description"),
	}, nil
}

// decodeStrict parses strict JSON and requires a top-level object
func decodeStrict(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// canonicalize round-trips a loose value through strict JSON so that
// downstream consumers only ever see canonical types
func canonicalize(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return decodeStrict(string(data))
}

// Repair pass regexes
var (
	singleQuotedKeyRe   = regexp.MustCompile(`'([^']*)'\s*:`)
	singleQuotedValueRe = regexp.MustCompile(`:\s*'([^']*)'`)
	arraySpanRe         = regexp.MustCompile(`\[[^\[\]]*\]`)
	singleQuotedItemRe  = regexp.MustCompile(`'([^']*)'`)
	commandFieldRe      = regexp.MustCompile(`(?s)"command"\s*:\s*"(.*?)"(\s*[,}])`)
)

// RepairJSON normalizes the quoting and literal issues generators
// commonly produce: single-quoted keys/values, Python-style booleans
// and None, and unescaped quotes inside the command field. Already
// valid input is returned unchanged.
func RepairJSON(s string) string {
	if json.Valid([]byte(s)) {
		return s
	}

	// Keys and string values delimited with single quotes
	s = singleQuotedKeyRe.ReplaceAllString(s, `"$1":`)
	s = singleQuotedValueRe.ReplaceAllString(s, `: "$1"`)

	// Single-quoted strings inside arrays
	s = arraySpanRe.ReplaceAllStringFunc(s, func(arr string) string {
		return singleQuotedItemRe.ReplaceAllString(arr, `"$1"`)
	})

	// Looser literal tokens
	s = strings.ReplaceAll(s, `"true"`, "true")
	s = strings.ReplaceAll(s, `"false"`, "false")
	s = strings.ReplaceAll(s, `"null"`, "null")
	s = strings.ReplaceAll(s, "True", "true")
	s = strings.ReplaceAll(s, "False", "false")
	s = strings.ReplaceAll(s, "None", "null")

	// Command text commonly contains quotes that break naive repair
	s = escapeCommandQuotes(s)

	return s
}

// escapeCommandQuotes re-escapes unescaped double quotes embedded in
// the command field's value. The non-greedy match extends to the last
// quote followed by a ',' or '}', so quotes inside the command itself
// do not terminate the value.
func escapeCommandQuotes(s string) string {
	return commandFieldRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := commandFieldRe.FindStringSubmatch(m)
		if sub == nil {
			return m
		}
		cmd := sub[1]
		cmd = strings.ReplaceAll(cmd, `\"`, "\x00")
		cmd = strings.ReplaceAll(cmd, `"`, `\"`)
		cmd = strings.ReplaceAll(cmd, "\x00", `\"`)
		return `"command": "` + cmd + `"` + sub[2]
	})
}

// Field coercion helpers. On a successful parse, callers are
// guaranteed string-typed fields where the schema expects strings.

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func boolField(obj map[string]any, key string) bool {
	switch v := obj[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

func stringSliceField(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		} else {
			out = append(out, fmt.Sprintf("%v", item))
		}
	}
	return out
}
