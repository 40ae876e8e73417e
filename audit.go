package main

import (
	"regexp"
	"strings"
)

// blockedKeywords are substrings that reject a command outright.
// Matching is case-insensitive.
var blockedKeywords = []string{
	"rm -rf", ":(){ :|:& };:", "mkfs", "dd if=/dev/zero",
	"chmod -R 777", "wget", "curl", "> /dev/sda",
	"sudo", "su -", "passwd", "/etc/shadow", "/etc/passwd",
	"format", "del /f", "deltree", "rd /s", "iptables",
}

// patternRule pairs a compiled pattern with its human-readable reason
type patternRule struct {
	re     *regexp.Regexp
	reason string
}

// dangerousPatterns reject a command with the paired reason.
// First match wins; order is part of the policy.
var dangerousPatterns = []patternRule{
	{regexp.MustCompile(`(?i)\brm\b.*-[rf]`), "Command may delete files/directories"},
	{regexp.MustCompile(`(?i)\bformat\b`), "Command may format storage device"},
	{regexp.MustCompile(`(?i)\bchmod\b.*777`), "Command sets dangerous file permissions"},
	{regexp.MustCompile(`(?i)\bsudo\b`), "Command requires elevated privileges"},
	{regexp.MustCompile(`(?i)\bnc\b.*-e`), "Command may open network backdoor"},
	{regexp.MustCompile(`(?i)\btelnet\b`), "Command uses insecure protocol"},
	{regexp.MustCompile(`(?i)>\s*/dev/`), "Command writes directly to device files"},
	{regexp.MustCompile(`(?i)>>\s*/etc/`), "Command modifies system configuration files"},
	{regexp.MustCompile(`(?i)\bfdisk\b`), "Command may modify disk partitions"},
	{regexp.MustCompile(`(?i)\bmkfs\b`), "Command may format filesystem"},
	{regexp.MustCompile(`(?i):\(\){`), "Command appears to be a fork bomb"},
	{regexp.MustCompile(`(?i)while\s*true`), "Command contains infinite loop"},
}

// advisoryPatterns emit a non-blocking warning but never change the verdict
var advisoryPatterns = []patternRule{
	{regexp.MustCompile(`(?i)\bgrep\b.*-r`), "Command searches recursively - verify scope"},
	{regexp.MustCompile(`(?i)\bfind\b.*-delete`), "Command will delete files - verify scope"},
	{regexp.MustCompile(`(?i)\bsed\b.*-i`), "Command modifies files in-place - verify files"},
	{regexp.MustCompile(`(?i)\bchown\b`), "Command changes file ownership - verify impact"},
}

// Verdict is the outcome of auditing a command. On rejection Reason
// holds the explanation; on acceptance Command holds the original,
// unmodified command text.
type Verdict struct {
	Safe    bool
	Reason  string
	Command string
}

// Auditor is the safety gate applied to every generated command before
// it is shown, copied, or recorded. Rejections and advisory warnings
// are reported through the UI collaborator; callers branch on the
// verdict, not on errors.
type Auditor struct {
	ui *UI
}

// NewAuditor creates an auditor reporting through the given UI
func NewAuditor(ui *UI) *Auditor {
	return &Auditor{ui: ui}
}

// IsSafe runs the hard-rejection pass: blocked keywords first, then
// dangerous patterns. Returns false with a reason on the first hit.
func (a *Auditor) IsSafe(command string) (bool, string) {
	lower := strings.ToLower(command)
	for _, keyword := range blockedKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return false, "Command contains blocked keyword: " + keyword
		}
	}

	for _, rule := range dangerousPatterns {
		if rule.re.MatchString(command) {
			return false, rule.reason
		}
	}

	return true, ""
}

// Audit applies both passes to a command. Pass 1 rejects; pass 2 only
// warns. Auditing never rewrites the command.
func (a *Auditor) Audit(command, description string) Verdict {
	if ok, reason := a.IsSafe(command); !ok {
		a.ui.Error("Unsafe command detected: %s", reason)
		return Verdict{Safe: false, Reason: reason}
	}

	for _, rule := range advisoryPatterns {
		if rule.re.MatchString(command) {
			a.ui.Warning("%s", rule.reason)
		}
	}

	return Verdict{Safe: true, Command: command}
}
