// Package config reads and writes the repaint RC file.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/repaint/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Advisor selects the colour advisory backend.
type Advisor struct {
	Provider    string
	Model       string
	Temperature float64
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	Catalog   string // path to a catalog YAML; empty uses the embedded one
	Scenes    string // path to image definitions YAML; empty uses the embedded ones
	ExportDir string
	Excluded  []string
	Alpha     float64
	Blend     string
	Prefill   bool
	Advisor   Advisor
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Excluded: []string{"floor"},
		Alpha:    0.40,
		Blend:    "normal",
		Advisor: Advisor{
			Provider:    "gemini",
			Temperature: 0.7,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ApplyEnv overrides fields from REPAINT_* variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	for key, field := range map[string]*string{
		"REPAINT_THEME":      &c.Theme,
		"REPAINT_CATALOG":    &c.Catalog,
		"REPAINT_SCENES":     &c.Scenes,
		"REPAINT_EXPORT_DIR": &c.ExportDir,
		"REPAINT_BLEND":      &c.Blend,
	} {
		if v := getenv(key); v != "" {
			*field = v
		}
	}
	if v := getenv("REPAINT_ADVISOR_MODEL"); v != "" {
		c.Advisor.Model = v
	}
	if v := getenv("REPAINT_ALPHA"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("REPAINT_ALPHA: %w", err)
		}
		c.Alpha = a
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Catalog != "" {
		fmt.Fprintf(&sb, "catalog = %s\n", c.Catalog)
	}
	if c.Scenes != "" {
		fmt.Fprintf(&sb, "scenes = %s\n", c.Scenes)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	fmt.Fprintf(&sb, "excluded = %s\n", strings.Join(c.Excluded, ","))
	fmt.Fprintf(&sb, "alpha = %s\n", strconv.FormatFloat(c.Alpha, 'f', -1, 64))
	fmt.Fprintf(&sb, "blend = %s\n", c.Blend)
	fmt.Fprintf(&sb, "prefill = %v\n", c.Prefill)
	sb.WriteString("\n")

	sb.WriteString("[advisor]\n")
	fmt.Fprintf(&sb, "provider = %s\n", c.Advisor.Provider)
	if c.Advisor.Model != "" {
		fmt.Fprintf(&sb, "model = %s\n", c.Advisor.Model)
	}
	fmt.Fprintf(&sb, "temperature = %s\n", strconv.FormatFloat(c.Advisor.Temperature, 'f', -1, 64))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.FormatColor(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
