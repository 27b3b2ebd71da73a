// Package platform delivers desktop notifications through the host's
// native mechanism.
package platform

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "Repaint"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName labels the sender where the platform shows one.
	AppName string
	// IconPath, when non-empty, points to an image file shown with the
	// notification if the platform supports it.
	IconPath string
	// TimeoutMillis is how long the notification stays visible; 0 uses 5s.
	TimeoutMillis int32
	// Category is a freedesktop notification category such as
	// "transfer.complete". Platforms without categories ignore it.
	Category string
	// Sound plays the platform's default alert sound where supported.
	Sound bool
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis <= 0 {
		return 5000
	}
	return o.TimeoutMillis
}

func (o Options) category() string {
	if o.Category == "" {
		return "transfer.complete"
	}
	return o.Category
}
