//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

func hasDisplay() bool { return true }
