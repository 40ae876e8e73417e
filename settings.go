package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings represents user-configurable settings stored in ~/.cmdgen/settings.json
type Settings struct {
	Provider string          `json:"provider"`
	Model    string          `json:"model"`
	History  HistorySettings `json:"history"`
	Theme    ThemeSettings   `json:"theme"`
}

// HistorySettings configures the invocation history store
type HistorySettings struct {
	// Enabled controls whether invocations are recorded
	Enabled bool `json:"enabled"`
	// MaxRecords caps how many records `--history` prints by default
	MaxRecords int `json:"maxRecords"`
}

// ThemeSettings configures the UI appearance
type ThemeSettings struct {
	// Name is the theme preset name
	Name string `json:"name"`
}

// ThemePreset defines colors for a complete theme
type ThemePreset struct {
	Prompt  string
	Success string
	Error   string
	Warning string
	Info    string
	Accent  string
}

// DefaultSettings returns the default settings
func DefaultSettings() *Settings {
	return &Settings{
		Provider: string(ProviderGemini),
		Model:    "", // provider default
		History: HistorySettings{
			Enabled:    true,
			MaxRecords: 20,
		},
		Theme: ThemeSettings{
			Name: "default",
		},
	}
}

// SettingsPath returns the path to the settings file
func SettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cmdgen", "settings.json"), nil
}

// LoadSettings loads settings from ~/.cmdgen/settings.json
// Returns default settings if the file doesn't exist or can't be read
func LoadSettings() (*Settings, error) {
	settings := DefaultSettings()

	path, err := SettingsPath()
	if err != nil {
		// Can't determine home directory - return defaults (not an error for the user)
		return settings, nil //nolint:nilerr // intentional: return defaults when path unavailable
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil // Return defaults if file doesn't exist
		}
		return settings, err
	}

	// Parse JSON, keeping defaults for missing fields
	if err := json.Unmarshal(data, settings); err != nil {
		return settings, err
	}

	return settings, nil
}

// SaveSettings saves settings to ~/.cmdgen/settings.json
func SaveSettings(settings *Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ANSI color codes (256-color mode for richer themes)
var colorCodes = map[string]string{
	// Basic colors
	"black":   "\033[30m",
	"red":     "\033[91m",
	"green":   "\033[92m",
	"yellow":  "\033[93m",
	"blue":    "\033[94m",
	"magenta": "\033[95m",
	"cyan":    "\033[96m",
	"white":   "\033[97m",
	"reset":   "\033[0m",

	// Extended colors for themes (256-color)
	"matrix_green":     "\033[38;5;46m",  // Bright green
	"matrix_dim":       "\033[38;5;22m",  // Dark green
	"solarized_blue":   "\033[38;5;33m",  // Solarized blue
	"solarized_cyan":   "\033[38;5;37m",  // Solarized cyan
	"solarized_green":  "\033[38;5;64m",  // Solarized green
	"solarized_red":    "\033[38;5;160m", // Solarized red
	"solarized_yellow": "\033[38;5;136m", // Solarized yellow
	"gruvbox_orange":   "\033[38;5;208m", // Gruvbox orange
	"gruvbox_green":    "\033[38;5;142m", // Gruvbox green
	"gruvbox_red":      "\033[38;5;167m", // Gruvbox red
	"gruvbox_yellow":   "\033[38;5;214m", // Gruvbox yellow
	"gruvbox_aqua":     "\033[38;5;108m", // Gruvbox aqua
	"dracula_purple":   "\033[38;5;141m", // Dracula purple
	"dracula_pink":     "\033[38;5;212m", // Dracula pink
	"dracula_green":    "\033[38;5;84m",  // Dracula green
	"dracula_red":      "\033[38;5;210m", // Dracula red
	"dracula_cyan":     "\033[38;5;117m", // Dracula cyan
	"nord_blue":        "\033[38;5;67m",  // Nord frost blue
	"nord_cyan":        "\033[38;5;110m", // Nord frost cyan
	"nord_green":       "\033[38;5;108m", // Nord aurora green
	"nord_red":         "\033[38;5;174m", // Nord aurora red
	"nord_yellow":      "\033[38;5;222m", // Nord aurora yellow
}

// ThemePresets contains all available theme presets
var ThemePresets = map[string]ThemePreset{
	"default": {
		Prompt:  "blue",
		Success: "green",
		Error:   "red",
		Warning: "yellow",
		Info:    "cyan",
		Accent:  "magenta",
	},
	"matrix": {
		Prompt:  "matrix_green",
		Success: "matrix_green",
		Error:   "matrix_dim",
		Warning: "matrix_green",
		Info:    "matrix_green",
		Accent:  "matrix_green",
	},
	"solarized": {
		Prompt:  "solarized_blue",
		Success: "solarized_green",
		Error:   "solarized_red",
		Warning: "solarized_yellow",
		Info:    "solarized_cyan",
		Accent:  "solarized_blue",
	},
	"gruvbox": {
		Prompt:  "gruvbox_orange",
		Success: "gruvbox_green",
		Error:   "gruvbox_red",
		Warning: "gruvbox_yellow",
		Info:    "gruvbox_aqua",
		Accent:  "gruvbox_orange",
	},
	"dracula": {
		Prompt:  "dracula_purple",
		Success: "dracula_green",
		Error:   "dracula_red",
		Warning: "dracula_pink",
		Info:    "dracula_cyan",
		Accent:  "dracula_purple",
	},
	"nord": {
		Prompt:  "nord_blue",
		Success: "nord_green",
		Error:   "nord_red",
		Warning: "nord_yellow",
		Info:    "nord_cyan",
		Accent:  "nord_blue",
	},
}

// Theme provides color formatting based on settings
type Theme struct {
	preset ThemePreset
}

// NewTheme creates a theme from settings
func NewTheme(settings *ThemeSettings) *Theme {
	preset, ok := ThemePresets[settings.Name]
	if !ok {
		preset = ThemePresets["default"]
	}
	return &Theme{preset: preset}
}

// Prompt formats text with the prompt color
func (t *Theme) Prompt(text string) string {
	return t.colorize(t.preset.Prompt, text)
}

// Success formats text with the success color
func (t *Theme) Success(text string) string {
	return t.colorize(t.preset.Success, text)
}

// Error formats text with the error color
func (t *Theme) Error(text string) string {
	return t.colorize(t.preset.Error, text)
}

// Warning formats text with the warning color
func (t *Theme) Warning(text string) string {
	return t.colorize(t.preset.Warning, text)
}

// Info formats text with the info color
func (t *Theme) Info(text string) string {
	return t.colorize(t.preset.Info, text)
}

// Accent formats text with the accent color
func (t *Theme) Accent(text string) string {
	return t.colorize(t.preset.Accent, text)
}

// Reset returns the reset code
func (t *Theme) Reset() string {
	return colorCodes["reset"]
}

// Dim formats text with dim/faint styling
func (t *Theme) Dim(text string) string {
	return "\033[2m" + text + colorCodes["reset"]
}

func (t *Theme) colorize(color, text string) string {
	return getColorCode(color) + text + colorCodes["reset"]
}

func getColorCode(color string) string {
	if code, ok := colorCodes[color]; ok {
		return code
	}
	return colorCodes["white"]
}

// AvailableThemes returns the list of available theme names
func AvailableThemes() []string {
	return []string{"default", "matrix", "solarized", "gruvbox", "dracula", "nord"}
}
