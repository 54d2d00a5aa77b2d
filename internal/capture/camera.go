package capture

import "time"

// CameraConfig describes a live capture device.
type CameraConfig struct {
	// Device is a V4L2 node such as /dev/video0. Empty picks the platform's
	// default camera.
	Device string
	Width  int
	Height int
	// FPS caps the capture rate; zero leaves it to the device.
	FPS int
	// Timeout bounds each RequestFrame wait. Zero means DefaultFrameTimeout.
	Timeout time.Duration
}

// DefaultFrameTimeout bounds a single frame wait when none is configured.
const DefaultFrameTimeout = 2 * time.Second

// rgbStride returns GStreamer's row stride for packed RGB, which pads rows to
// four bytes.
func rgbStride(width int) int {
	return (width*3 + 3) &^ 3
}

// unpadRGB copies a possibly padded RGB buffer into a tightly packed one.
func unpadRGB(dst, src []byte, width, height int) bool {
	row := width * 3
	switch {
	case len(src) == row*height:
		copy(dst, src)
		return true
	case len(src) >= rgbStride(width)*height:
		stride := rgbStride(width)
		for y := 0; y < height; y++ {
			copy(dst[y*row:(y+1)*row], src[y*stride:y*stride+row])
		}
		return true
	}
	return false
}
