package notify

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/repaint/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recording(out *[]sent) Sender {
	return func(title, body string, opts platform.Options) error {
		*out = append(*out, sent{title, body, opts})
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recording(&got))
	n.Export("x.png")
	n.Copy("geometry", nil)
	if len(got) != 0 {
		t.Fatalf("sent %v", got)
	}
	var nilNotifier *Notifier
	nilNotifier.Export("x.png")
}

func TestExportUsesFileAsIcon(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recording(&got))
	n.Enable(EventExport, true)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	n.Export(path)
	if len(got) != 1 {
		t.Fatalf("sent %d", len(got))
	}
	if got[0].opts.IconPath != path || !strings.HasPrefix(got[0].body, "Exported ") {
		t.Fatalf("sent %+v", got[0])
	}
	if got[0].opts.AppName != "Repaint" {
		t.Fatalf("AppName = %q", got[0].opts.AppName)
	}
	if got[0].opts.Category != "transfer.complete" {
		t.Fatalf("Category = %q", got[0].opts.Category)
	}
}

func TestCopyPreviewIsRemoved(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recording(&got))
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(got) != 1 || got[0].body != "Copied image to clipboard" {
		t.Fatalf("sent %+v", got)
	}
	if got[0].opts.IconPath == "" {
		t.Fatalf("no preview attached")
	}
	if _, err := os.Stat(got[0].opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview not cleaned up: %v", err)
	}
}
