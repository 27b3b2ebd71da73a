// Package appstate is the interactive editor window: the photo with its
// regions, a palette toolbar and keyboard shortcuts, driving the region
// editor from shiny pointer and key events.
package appstate

import (
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/example/repaint/internal/clipboard"
	"github.com/example/repaint/internal/editor"
	"github.com/example/repaint/internal/notify"
	"github.com/example/repaint/internal/render"
	"github.com/example/repaint/internal/session"
	"github.com/example/repaint/internal/theme"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// messageDuration is how long a status toast stays on screen.
const messageDuration = 3 * time.Second

// clickSlop is how far, in screen pixels, a press may travel and still count
// as a click.
const clickSlop = 4

// AppState holds the window's collaborators and its UI state. Everything
// after the exported fields is owned by the event loop goroutine.
type AppState struct {
	Session   *session.Session
	Base      image.Image
	Theme     *theme.Theme
	Notifier  *notify.Notifier
	ExportDir string
	Export    render.Options
	Preview   render.BlendMode
	Title     string

	editor    *editor.Editor
	onClose   func()
	closeOnce sync.Once
	now       func() time.Time
	clip      clipboardIO

	width, height  int
	lay            layout
	shortcuts      []shortcut
	hoverShortcut  int
	hoverSwatch    int
	pressSwatch    int
	swatchDragging bool
	pressInImage   bool
	pressPoint     image.Point
	message        string
	messageUntil   time.Time
	quit           bool

	scaledBase    *image.RGBA
	scaledBaseFor image.Rectangle
}

type clipboardIO struct {
	writeText  func(string) error
	readText   func() (string, error)
	writeImage func(image.Image) error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithBase sets the photo painted under the regions.
func WithBase(img image.Image) Option { return func(a *AppState) { a.Base = img } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option {
	return func(a *AppState) {
		if t != nil {
			a.Theme = t
		}
	}
}

// WithNotifier sets the desktop notifier used after export and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithExportDir sets where Ctrl+S writes PNG files.
func WithExportDir(dir string) Option { return func(a *AppState) { a.ExportDir = dir } }

// WithRenderOptions sets the compositing used for export. The preview uses
// the same alpha with its own blend mode.
func WithRenderOptions(opts render.Options, preview render.BlendMode) Option {
	return func(a *AppState) {
		a.Export = opts
		a.Preview = preview
	}
}

// WithSize sets the initial window size.
func WithSize(w, h int) Option { return func(a *AppState) { a.width, a.height = w, h } }

// WithEditMode starts the window in edit mode.
func WithEditMode(on bool) Option { return func(a *AppState) { a.editor.SetEditMode(on) } }

// WithOnClose registers fn to run once when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New builds the window state for sess, which must have an image selected.
func New(sess *session.Session, opts ...Option) *AppState {
	a := &AppState{
		Session: sess,
		Theme:   theme.Default(),
		Export:  render.DefaultOptions(),
		Preview: render.BlendMultiply,
		Title:   "Repaint",
		editor:  editor.New(sess.Model(), sess),
		now:     time.Now,
		clip: clipboardIO{
			writeText:  clipboard.WriteText,
			readText:   clipboard.ReadText,
			writeImage: clipboard.WriteImage,
		},
		width:         1280,
		height:        880,
		hoverShortcut: -1,
		hoverSwatch:   -1,
		pressSwatch:   -1,
	}
	for _, o := range opts {
		o(a)
	}
	a.resize(a.width, a.height)
	return a
}

// Editor exposes the region editor driven by the window.
func (a *AppState) Editor() *editor.Editor { return a.editor }

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the event loop on s until the window closes or Q is pressed.
func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: a.Title})
	if err != nil {
		slog.Error("new window", "error", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			a.drawFrame(s, w)
		case mouse.Event:
			if a.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if a.handleKey(e) {
				w.Send(paint.Event{})
			}
		case error:
			slog.Error("window event", "error", e)
		}
		if a.quit {
			return
		}
	}
}

func (a *AppState) resize(w, h int) {
	a.width, a.height = w, h
	a.relayout()
}

func (a *AppState) relayout() {
	var imgW, imgH float64
	if m := a.Session.Model(); m != nil {
		imgW, imgH = m.Size()
	}
	a.lay = computeLayout(a.width, a.height, imgW, imgH, a.Session.Palette().Len())
	a.editor.SetTransform(a.lay.transform)
	a.shortcuts = layoutShortcuts(a.width, a.height, a.editor.EditMode(), a.trigger)
}

func (a *AppState) setMessage(msg string) {
	a.message = msg
	a.messageUntil = a.now().Add(messageDuration)
	slog.Info(msg)
}

func (a *AppState) messageVisible() bool {
	return a.message != "" && a.now().Before(a.messageUntil)
}
