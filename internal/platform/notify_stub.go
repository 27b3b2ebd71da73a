//go:build !linux && !darwin && !windows

package platform

import "log/slog"

// Notify logs the notification where no desktop service is known.
func Notify(title, body string, opts Options) error {
	slog.Debug("notification", "app", opts.appName(), "title", title, "body", body)
	return nil
}
