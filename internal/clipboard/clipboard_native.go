//go:build ((linux || freebsd || openbsd || netbsd || dragonfly || darwin) && cgo) || windows

package clipboard

import (
	"golang.design/x/clipboard"
)

type nativeBackend struct{}

func newBackend() (backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return nativeBackend{}, nil
}

func (nativeBackend) writeText(data []byte) error {
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (nativeBackend) writeImage(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func (nativeBackend) readText() ([]byte, error) {
	return clipboard.Read(clipboard.FmtText), nil
}

func (nativeBackend) readImage() ([]byte, error) {
	return clipboard.Read(clipboard.FmtImage), nil
}
