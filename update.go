package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"
)

const githubReleaseURL = "https://api.github.com/repos/3rg0n/cmdgen/releases/latest"

// GitHubRelease represents the GitHub API release response
type GitHubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckForUpdate checks if a newer release is available.
// Returns (latestVersion, updateAvailable, error). Dev builds skip the check.
func CheckForUpdate(ctx context.Context) (string, bool, error) {
	if Version == "dev" || Version == "" {
		return "", false, nil
	}

	client := &http.Client{Timeout: 5 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubReleaseURL, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "cmdgen/"+Version)

	resp, err := client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", false, err
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(Version, "v")

	if compareVersions(latest, current) > 0 {
		return release.TagName, true, nil
	}
	return release.TagName, false, nil
}

// compareVersions compares two semantic versions.
// Returns 1 if a > b, -1 if a < b, 0 if equal.
func compareVersions(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	for len(aParts) < 3 {
		aParts = append(aParts, "0")
	}
	for len(bParts) < 3 {
		bParts = append(bParts, "0")
	}

	for i := 0; i < 3; i++ {
		aNum := parseVersionPart(aParts[i])
		bNum := parseVersionPart(bParts[i])

		if aNum > bNum {
			return 1
		}
		if aNum < bNum {
			return -1
		}
	}
	return 0
}

// parseVersionPart extracts the leading numeric part of a version
// component, handling cases like "1-beta" or "2rc1"
func parseVersionPart(s string) int {
	num := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		num = num*10 + int(c-'0')
	}
	return num
}

// UpdateCommand returns the install command for the current platform
func UpdateCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "brew upgrade cmdgen"
	case "windows":
		return "scoop update cmdgen"
	default:
		return "curl -sSL https://raw.githubusercontent.com/3rg0n/cmdgen/master/install.sh | bash"
	}
}

// PrintUpdateNotice prints a notification if a newer version exists.
// Errors are ignored so a flaky network never blocks version output.
func PrintUpdateNotice() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	latest, available, err := CheckForUpdate(ctx)
	if err != nil || !available {
		return
	}

	fmt.Printf("\n    \033[93mUpdate available:\033[0m %s -> %s\n", Version, latest)
	fmt.Printf("    Run: \033[96m%s\033[0m\n\n", UpdateCommand())
}
