package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
export_dir = /tmp/exports
excluded = floor, window-area
alpha = 0.5
blend = multiply
prefill = true

[advisor]
model = gemini-1.5-pro
temperature = 0.2

[notify]
export = true
copy = false

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.ExportDir != "/tmp/exports" {
		t.Errorf("Expected export_dir '/tmp/exports', got '%s'", cfg.ExportDir)
	}
	if strings.Join(cfg.Excluded, "|") != "floor|window-area" {
		t.Errorf("Excluded = %v", cfg.Excluded)
	}
	if cfg.Alpha != 0.5 || cfg.Blend != "multiply" || !cfg.Prefill {
		t.Errorf("root fields = %+v", cfg)
	}
	if cfg.Advisor.Provider != "gemini" || cfg.Advisor.Model != "gemini-1.5-pro" || cfg.Advisor.Temperature != 0.2 {
		t.Errorf("Advisor = %+v", cfg.Advisor)
	}
	if !cfg.Notify.Export || cfg.Notify.Copy {
		t.Errorf("Notify = %+v", cfg.Notify)
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseRejectsBadAlpha(t *testing.T) {
	if _, err := Parse(strings.NewReader("alpha = 3\n")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Parse(strings.NewReader("[notify]\nexport = maybe\n")); err == nil {
		t.Fatal("expected error")
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
export_dir = /home/user/paint
catalog = colors.yaml

[notify]
export = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}
	if cfg.Theme != cfg2.Theme || cfg.ExportDir != cfg2.ExportDir || cfg.Catalog != cfg2.Catalog {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify || cfg.Advisor != cfg2.Advisor {
		t.Errorf("section mismatch: %+v vs %+v", cfg, cfg2)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	env := map[string]string{"REPAINT_EXPORT_DIR": "/out", "REPAINT_ALPHA": "0.25"}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.ExportDir != "/out" || cfg.Alpha != 0.25 {
		t.Errorf("cfg = %+v", cfg)
	}
	env["REPAINT_ALPHA"] = "lots"
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err == nil {
		t.Errorf("expected error")
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.rc")
	cfg := New()
	cfg.ExportDir = "/srv/paint"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
	got, err := NewLoader("v1", path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ExportDir != "/srv/paint" {
		t.Errorf("ExportDir = %q", got.ExportDir)
	}
}
