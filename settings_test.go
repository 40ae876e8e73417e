package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Provider != string(ProviderGemini) {
		t.Errorf("default provider = %q", s.Provider)
	}
	if !s.History.Enabled {
		t.Error("history should be enabled by default")
	}
	if s.Theme.Name != "default" {
		t.Errorf("default theme = %q", s.Theme.Name)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Provider != string(ProviderGemini) {
		t.Errorf("missing file should yield defaults, got provider %q", s.Provider)
	}
}

func TestSaveAndLoadSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s := DefaultSettings()
	s.Provider = "anthropic"
	s.Model = "claude-3-5-haiku-latest"
	s.Theme.Name = "gruvbox"
	s.History.MaxRecords = 50

	if err := SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if loaded.Provider != "anthropic" || loaded.Model != "claude-3-5-haiku-latest" {
		t.Errorf("round trip lost provider/model: %+v", loaded)
	}
	if loaded.Theme.Name != "gruvbox" {
		t.Errorf("round trip lost theme: %q", loaded.Theme.Name)
	}
	if loaded.History.MaxRecords != 50 {
		t.Errorf("round trip lost history limit: %d", loaded.History.MaxRecords)
	}
}

func TestLoadSettingsPartialFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".cmdgen")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	// Only the theme is set; everything else keeps defaults
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"theme": {"name": "nord"}}`), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Theme.Name != "nord" {
		t.Errorf("theme = %q, want nord", s.Theme.Name)
	}
	if s.Provider != string(ProviderGemini) {
		t.Errorf("missing provider should default, got %q", s.Provider)
	}
}

func TestNewThemeFallsBackToDefault(t *testing.T) {
	theme := NewTheme(&ThemeSettings{Name: "no-such-theme"})
	if theme.preset != ThemePresets["default"] {
		t.Error("unknown theme name should fall back to the default preset")
	}
}

func TestThemePresetsComplete(t *testing.T) {
	for _, name := range AvailableThemes() {
		preset, ok := ThemePresets[name]
		if !ok {
			t.Errorf("theme %q listed but has no preset", name)
			continue
		}
		for label, color := range map[string]string{
			"prompt":  preset.Prompt,
			"success": preset.Success,
			"error":   preset.Error,
			"warning": preset.Warning,
			"info":    preset.Info,
			"accent":  preset.Accent,
		} {
			if _, ok := colorCodes[color]; !ok {
				t.Errorf("theme %q %s color %q has no ANSI code", name, label, color)
			}
		}
	}
}

func TestThemeColorize(t *testing.T) {
	theme := NewTheme(&ThemeSettings{Name: "default"})

	out := theme.Error("boom")
	if !strings.Contains(out, "boom") {
		t.Errorf("colorized text lost content: %q", out)
	}
	if !strings.HasSuffix(out, colorCodes["reset"]) {
		t.Errorf("colorized text missing reset: %q", out)
	}
}
