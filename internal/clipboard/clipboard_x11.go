//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Backend owns the CLIPBOARD selection through a hidden window and
// serves requests from a goroutine, so builds without cgo still work.
type x11Backend struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomSet

	mu      sync.RWMutex
	text    []byte
	pngData []byte
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func newBackend() (backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	b := &x11Backend{conn: conn, window: window, atoms: atoms}
	go b.serve()
	return b, nil
}

func internAtoms(conn *xgb.Conn) (atomSet, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", "REPAINT_CLIPBOARD"}
	got := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atomSet{}, fmt.Errorf("intern %s: %w", name, err)
		}
		got[i] = reply.Atom
	}
	return atomSet{clipboard: got[0], targets: got[1], utf8: got[2], textPlain: got[3], png: got[4], property: got[5]}, nil
}

func (b *x11Backend) writeText(data []byte) error {
	b.mu.Lock()
	b.text, b.pngData = append([]byte(nil), data...), nil
	b.mu.Unlock()
	return b.own()
}

func (b *x11Backend) writeImage(data []byte) error {
	b.mu.Lock()
	b.text, b.pngData = nil, append([]byte(nil), data...)
	b.mu.Unlock()
	return b.own()
}

func (b *x11Backend) own() error {
	return xproto.SetSelectionOwnerChecked(b.conn, b.window, b.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (b *x11Backend) readText() ([]byte, error) {
	data, err := b.convert(b.atoms.utf8)
	if err != nil {
		if data, err = b.convert(xproto.AtomString); err != nil {
			return nil, err
		}
	}
	// Some STRING owners append a NUL.
	if n := len(data); n > 0 && data[n-1] == 0 {
		data = data[:n-1]
	}
	return data, nil
}

func (b *x11Backend) readImage() ([]byte, error) {
	return b.convert(b.atoms.png)
}

func (b *x11Backend) serve() {
	for {
		ev, err := b.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			b.answer(e)
		case xproto.SelectionClearEvent:
			b.mu.Lock()
			b.text, b.pngData = nil, nil
			b.mu.Unlock()
		}
	}
}

// payloadFor returns the data, type and format served for target, or ok
// false when nothing matching is held.
func (b *x11Backend) payloadFor(target xproto.Atom) (data []byte, typ xproto.Atom, format byte, ok bool) {
	b.mu.RLock()
	text, img := b.text, b.pngData
	b.mu.RUnlock()

	switch target {
	case b.atoms.targets:
		targets := []xproto.Atom{b.atoms.targets}
		if len(text) > 0 {
			targets = append(targets, b.atoms.utf8, xproto.AtomString, b.atoms.textPlain)
		}
		if len(img) > 0 {
			targets = append(targets, b.atoms.png)
		}
		buf := make([]byte, len(targets)*4)
		for i, a := range targets {
			xgb.Put32(buf[i*4:], uint32(a))
		}
		return buf, xproto.AtomAtom, 32, true
	case b.atoms.utf8, xproto.AtomString, b.atoms.textPlain:
		return text, b.atoms.utf8, 8, len(text) > 0
	case b.atoms.png:
		return img, b.atoms.png, 8, len(img) > 0
	}
	return nil, 0, 0, false
}

func (b *x11Backend) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	if data, typ, format, ok := b.payloadFor(e.Target); ok {
		length := uint32(len(data))
		if format == 32 {
			length /= 4
		}
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, property, typ, format, length, data)
	} else {
		property = xproto.AtomNone
	}
	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(b.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// convert asks the current owner for target on a throwaway connection.
func (b *x11Backend) convert(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, b.atoms.clipboard, target, b.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard target unavailable")
		}
		if e.Property != b.atoms.property {
			continue
		}
		reply, perr := xproto.GetProperty(conn, true, window, b.atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
