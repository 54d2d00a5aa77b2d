//go:build !gst

package capture

import "fmt"

// CameraSource is unavailable without the gst build tag.
type CameraSource struct{ Source }

// NewCamera always fails in builds without GStreamer support.
func NewCamera(cfg CameraConfig) (*CameraSource, error) {
	return nil, fmt.Errorf("%w: built without GStreamer support, rebuild with -tags gst", ErrUnavailable)
}
