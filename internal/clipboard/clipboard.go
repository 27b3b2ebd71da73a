// Package clipboard copies region geometry and composited images to the
// system clipboard and reads them back.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"
)

var (
	// ErrUnsupported is returned on platforms without a clipboard backend.
	ErrUnsupported = errors.New("clipboard is not supported on this platform")
	errNoDisplay   = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

	initOnce sync.Once
	initErr  error
	active   backend
)

// backend moves raw payloads; text is UTF-8 and images are PNG.
type backend interface {
	writeText(data []byte) error
	writeImage(data []byte) error
	readText() ([]byte, error)
	readImage() ([]byte, error)
}

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		active, initErr = newBackend()
	})
	return initErr
}

// WriteText publishes text, such as exported geometry JSON.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.writeText([]byte(text))
}

// ReadText returns the clipboard's UTF-8 text.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := active.readText()
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("clipboard does not contain text data")
	}
	return string(data), nil
}

// WriteImage encodes img as PNG and publishes it.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return active.writeImage(buf.Bytes())
}

// ReadImage decodes PNG data from the clipboard.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := active.readImage()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("clipboard does not contain image data")
	}
	return png.Decode(bytes.NewReader(data))
}
