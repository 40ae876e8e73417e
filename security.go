package main

import "regexp"

// injectionPatterns flag user input that must never be embedded into a
// prompt template. Ordered; the first match rejects the whole request.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$\(\s*.*\s*\)`), // Command substitution $(...)
	regexp.MustCompile("(?i)`.*`"),           // Backtick command execution
	regexp.MustCompile(`(?i)eval\s*\(`),      // eval() function
	regexp.MustCompile(`(?i)system\s*\(`),    // system() function
	regexp.MustCompile(`(?i)exec\s*\(`),      // exec() function
	regexp.MustCompile(`(?i);\s*rm\s`),       // Command chaining with rm
	regexp.MustCompile(`(?i);\s*dd\s`),       // Command chaining with dd
	regexp.MustCompile(`(?i)--.+`),           // SQL comment syntax
	regexp.MustCompile(`(?i)'--`),            // SQL injection with quotes
	regexp.MustCompile(`(?i)<script>`),       // Script tag injection
}

// ValidateInput reports whether user input is safe to embed verbatim in
// a generator prompt. A false return means the caller must reject the
// whole request, not sanitize and continue. Reporting the offending
// text to the user is the caller's responsibility.
func ValidateInput(text string) bool {
	for _, pattern := range injectionPatterns {
		if pattern.MatchString(text) {
			return false
		}
	}
	return true
}
