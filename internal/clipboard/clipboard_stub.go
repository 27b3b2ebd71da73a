//go:build !(((linux || freebsd || openbsd || netbsd || dragonfly || darwin) && cgo) || windows) && !((linux || freebsd || openbsd || netbsd || dragonfly) && !cgo)

package clipboard

func newBackend() (backend, error) {
	return nil, ErrUnsupported
}
