package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FilePrefix starts every exported file name.
const FilePrefix = "phoi-mau-lavis"

// ExportFilename returns "phoi-mau-lavis-<UTC timestamp>.png" where the
// millisecond ISO 8601 timestamp has ':' and '.' replaced by '-'.
func ExportFilename(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return FilePrefix + "-" + stamp + ".png"
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return ErrBaseUnavailable
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Export writes img into dir under ExportFilename(now) and returns the path.
// The file is written to a temporary name first so a failed export leaves
// nothing behind.
func Export(dir string, img image.Image, now time.Time) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", ErrBaseUnavailable
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+FilePrefix+"-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }
	if err := EncodePNG(tmp, img); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("close %s: %w", tmpName, err)
	}
	path := filepath.Join(dir, ExportFilename(now))
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}
