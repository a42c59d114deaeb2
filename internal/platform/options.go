// Package platform shows desktop notifications with whatever the host OS
// provides.
package platform

import "time"

// DefaultAppName is reported to notification daemons that group by sender.
const DefaultAppName = "ShineyPaint"

// DefaultTimeout is how long a notification stays up where that can be set.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown alongside the
	// notification if the platform supports it.
	IconPath string
	// AppName overrides DefaultAppName.
	AppName string
	// Timeout overrides DefaultTimeout. Only the freedesktop notifier honours it.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName != "" {
		return o.AppName
	}
	return DefaultAppName
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}
