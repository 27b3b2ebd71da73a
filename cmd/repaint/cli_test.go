package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/repaint/internal/advisor"
	"github.com/example/repaint/internal/config"
	"github.com/example/repaint/internal/render"
)

func newTestRoot(t *testing.T) (*root, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	return newRootWith(config.New(), nil, &stdout, &stderr), &stdout, &stderr
}

func stubBase(t *testing.T) {
	t.Helper()
	original := loadBaseFn
	loadBaseFn = func(context.Context, string) (image.Image, error) {
		return render.Blank(192, 128, image.NewUniform(color.RGBA{200, 200, 200, 255})), nil
	}
	t.Cleanup(func() { loadBaseFn = original })
}

func stubProvider(t *testing.T, suggestions []advisor.Suggestion) *advisor.Request {
	t.Helper()
	var seen advisor.Request
	original := newProvider
	newProvider = func(config.Advisor) advisor.Provider {
		return advisor.ProviderFunc(func(_ context.Context, req advisor.Request) ([]advisor.Suggestion, error) {
			seen = req
			return suggestions, nil
		})
	}
	t.Cleanup(func() { newProvider = original })
	return &seen
}

func TestUnknownCommandRendersUsage(t *testing.T) {
	r, _, _ := newTestRoot(t)
	err := r.Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if msg := uerr.Error(); !strings.Contains(msg, "Commands:") || !strings.Contains(msg, "-notify-export") {
		t.Fatalf("usage text missing sections:\n%s", msg)
	}
}

func TestColorsPaging(t *testing.T) {
	r, stdout, _ := newTestRoot(t)
	if err := r.Run([]string{"colors", "-limit", "2"}); err != nil {
		t.Fatalf("colors: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "LV-1001") || !strings.Contains(out, "LV-1002") || strings.Contains(out, "LV-1003") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
	if !strings.Contains(out, "-offset 2") {
		t.Fatalf("missing continuation hint:\n%s", out)
	}
}

func TestColorsUnknownCategory(t *testing.T) {
	r, _, _ := newTestRoot(t)
	if err := r.Run([]string{"colors", "-category", "nope"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestScenesMarksExcluded(t *testing.T) {
	r, stdout, _ := newTestRoot(t)
	if err := r.Run([]string{"scenes"}); err != nil {
		t.Fatalf("scenes: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "interior-lavis-auto") || !strings.Contains(out, "floor (excluded)") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
	if strings.Contains(out, "left-wall (excluded)") {
		t.Fatalf("left-wall should be paintable:\n%s", out)
	}
}

func TestResolveColor(t *testing.T) {
	r, _, _ := newTestRoot(t)
	cat, err := r.loadCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	entry, _ := cat.Lookup("LV-1001")
	tests := []struct {
		in, want string
	}{
		{"LV-1001", entry.Display()},
		{"#ABCDEF", "#abcdef"},
		{"tomato", "#ff6347"},
		{" Navy ", "#000080"},
	}
	for _, tt := range tests {
		got, err := resolveColor(cat, tt.in)
		if err != nil {
			t.Fatalf("resolveColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("resolveColor(%q) = %q want %q", tt.in, got, tt.want)
		}
	}
	if _, err := resolveColor(cat, "not-a-colour"); !errors.Is(err, errUnknownColorName) {
		t.Fatalf("expected errUnknownColorName, got %v", err)
	}
}

func TestParseRenderNeedsSomethingToPaint(t *testing.T) {
	r, _, _ := newTestRoot(t)
	_, err := parseRenderCmd(nil, r)
	if err == nil || !strings.Contains(err.Error(), "nothing to paint") {
		t.Fatalf("expected nothing to paint error, got %v", err)
	}
}

func TestRenderWritesPNG(t *testing.T) {
	stubBase(t)
	r, stdout, _ := newTestRoot(t)
	dir := t.TempDir()
	err := r.Run([]string{"render", "-output", dir, "-assign", "left-wall=LV-1003", "-assign", "ceiling=white"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	path := strings.TrimSpace(stdout.String())
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), render.FilePrefix) {
		t.Fatalf("unexpected path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export missing: %v", err)
	}
}

func TestRenderRejectsExcludedRegion(t *testing.T) {
	stubBase(t)
	r, _, _ := newTestRoot(t)
	err := r.Run([]string{"render", "-output", t.TempDir(), "-assign", "floor=LV-1001"})
	if err == nil || !strings.Contains(err.Error(), `"floor" cannot be painted`) {
		t.Fatalf("expected floor rejection, got %v", err)
	}
}

func TestRenderBaseFailureIsWrapped(t *testing.T) {
	original := loadBaseFn
	loadBaseFn = func(context.Context, string) (image.Image, error) {
		return nil, render.ErrBaseUnavailable
	}
	t.Cleanup(func() { loadBaseFn = original })
	r, _, _ := newTestRoot(t)
	err := r.Run([]string{"render", "-output", t.TempDir(), "-assign", "ceiling=white"})
	if !errors.Is(err, render.ErrBaseUnavailable) || !strings.Contains(err.Error(), "render interior-lavis-auto") {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
}

func TestSuggestFiltersToPalette(t *testing.T) {
	seen := stubProvider(t, []advisor.Suggestion{
		{ID: "LV-2001", Reason: "not in palette"},
		{ID: "LV-1002", Reason: "warm"},
		{ID: "LV-1001", Reason: "bright"},
	})
	r, stdout, _ := newTestRoot(t)
	err := r.Run([]string{"suggest", "-palette", "LV-1001,LV-1002", "-apply", "cosy", "living", "room"})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if seen.Prompt != "cosy living room" || strings.Join(seen.PermittedIDs, ",") != "LV-1001,LV-1002" {
		t.Fatalf("request = %+v", *seen)
	}
	out := stdout.String()
	if strings.Contains(out, "LV-2001") {
		t.Fatalf("unpermitted colour printed:\n%s", out)
	}
	if strings.Index(out, "LV-1001") > strings.Index(out, "LV-1002") {
		t.Fatalf("suggestions not in catalog order:\n%s", out)
	}
	if !strings.Contains(out, "left-wall = #") || strings.Contains(out, "floor =") {
		t.Fatalf("unexpected assignments:\n%s", out)
	}
}

func TestGeometryPasteFromFile(t *testing.T) {
	r, stdout, stderr := newTestRoot(t)
	input := filepath.Join(t.TempDir(), "geometry.json")
	data := `[{"id":"left-wall","points":"0,0 100,0 100,100","labelPos":{"x":50,"y":30}},{"id":"floor","points":"0,0 1,0 1,1"}]`
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := r.Run([]string{"geometry", "-input", input, "paste"}); err != nil {
		t.Fatalf("geometry paste: %v", err)
	}
	if !strings.Contains(stdout.String(), `"points": "0.00,0.00 100.00,0.00 100.00,100.00"`) {
		t.Fatalf("pasted geometry not printed:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "skipped regions: floor") {
		t.Fatalf("skipped region not reported: %q", stderr.String())
	}
}

func TestGeometryCopyUsesClipboard(t *testing.T) {
	original := clipboardWriteText
	var copied string
	clipboardWriteText = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWriteText = original })

	r, _, _ := newTestRoot(t)
	if err := r.Run([]string{"geometry", "copy"}); err != nil {
		t.Fatalf("geometry copy: %v", err)
	}
	if !strings.Contains(copied, `"id": "left-wall"`) {
		t.Fatalf("clipboard = %q", copied)
	}
}

func TestGeometryClipboardErrorIsWrapped(t *testing.T) {
	original := clipboardReadText
	sentinel := errors.New("no display")
	clipboardReadText = func() (string, error) { return "", sentinel }
	t.Cleanup(func() { clipboardReadText = original })

	r, _, _ := newTestRoot(t)
	err := r.Run([]string{"geometry", "paste"})
	if !errors.Is(err, sentinel) || !strings.Contains(err.Error(), "paste geometry") {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
}

func TestConfigPrint(t *testing.T) {
	r, stdout, _ := newTestRoot(t)
	if err := r.Run([]string{"config", "print"}); err != nil {
		t.Fatalf("config print: %v", err)
	}
	if !strings.Contains(stdout.String(), "excluded = floor") {
		t.Fatalf("unexpected config:\n%s", stdout.String())
	}
}

func TestInteractiveRunsLines(t *testing.T) {
	r, stdout, stderr := newTestRoot(t)
	cmd := &interactiveCmd{root: r, in: strings.NewReader("version\n\nbogus-flagless nonsense\nexit\nversion\n")}
	if err := cmd.Run(); err != nil {
		t.Fatalf("interactive: %v", err)
	}
	if n := strings.Count(stdout.String(), "repaint version dev"); n != 1 {
		t.Fatalf("expected one version line before exit, got %d:\n%s", n, stdout.String())
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Fatalf("bad command should print usage, got %q", stderr.String())
	}
}

func TestSplitLine(t *testing.T) {
	got := splitLine(`suggest -prompt "warm and bright"  -apply`)
	want := []string{"suggest", "-prompt", "warm and bright", "-apply"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("splitLine = %q", got)
	}
}

func TestRenderImageFromClipboard(t *testing.T) {
	original := clipboardReadImage
	clipboardReadImage = func() (image.Image, error) {
		return render.Blank(96, 64, image.White), nil
	}
	t.Cleanup(func() { clipboardReadImage = original })

	r, stdout, _ := newTestRoot(t)
	if err := r.Run([]string{"render", "-image", "clipboard", "-output", t.TempDir(), "-assign", "back-wall=#336699"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(strings.TrimSpace(stdout.String())); err != nil {
		t.Fatalf("export missing: %v", err)
	}
}

func TestEditBuildsStarterPalette(t *testing.T) {
	stubBase(t)
	r, _, _ := newTestRoot(t)
	cmd, err := parseEditCmd([]string{"-edit-mode"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	st, err := cmd.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if n := st.Session.Palette().Len(); n != defaultSwatches {
		t.Fatalf("palette has %d colours", n)
	}
	if st.Session.ActiveID() != "LV-1001" {
		t.Fatalf("active = %q", st.Session.ActiveID())
	}
	if !st.Editor().EditMode() || st.Base == nil {
		t.Fatalf("window state not configured")
	}
}
