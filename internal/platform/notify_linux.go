//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest = "org.freedesktop.Notifications"
	notifyPath = "/org/freedesktop/Notifications"
)

// Notify calls org.freedesktop.Notifications.Notify on the session bus. A
// set IconPath is passed both as the app icon and as the image-path hint so
// servers that only honour one of them still show the exported picture.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{
		"category": dbus.MakeVariant(opts.category()),
	}
	if opts.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant("file://" + opts.IconPath)
	}
	if !opts.Sound {
		hints["suppress-sound"] = dbus.MakeVariant(true)
	}
	var id uint32
	err = conn.Object(notifyDest, notifyPath).Call(notifyDest+".Notify", 0,
		opts.appName(), uint32(0), opts.IconPath, title, body, []string{}, hints, opts.timeout()).Store(&id)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
