// Package capture supplies source frames to the tick loop.
//
// Every Source hands out exactly one frame per RequestFrame call. The call may
// block; the context bounds how long. Close drains any request that is still
// in flight before releasing the underlying device.
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"camera-trail/internal/core"
)

var (
	// ErrUnavailable means no usable device was found or it is busy.
	ErrUnavailable = errors.New("capture: source unavailable")
	// ErrClosed is returned for requests made after Close.
	ErrClosed = errors.New("capture: source closed")
	// ErrEndOfStream is returned by finite sources once exhausted.
	ErrEndOfStream = errors.New("capture: end of stream")
	// ErrTimeout means no frame arrived within the bounded wait.
	ErrTimeout = errors.New("capture: timed out waiting for frame")
	// ErrDeviceBusy is the ErrUnavailable case where a device exists but
	// refuses to start.
	ErrDeviceBusy = fmt.Errorf("%w: device busy", ErrUnavailable)
)

// UnavailableMessage returns the console message for a start-up failure, or
// the empty string when err is not an availability problem.
func UnavailableMessage(err error) string {
	switch {
	case errors.Is(err, ErrDeviceBusy):
		return "Capture failed - the device may be already in use."
	case errors.Is(err, ErrUnavailable):
		return "No camera detected!"
	}
	return ""
}

// Frame is a single captured image in packed 8-bit RGB.
type Frame struct {
	// Seq is the monotonic sequence number.
	Seq uint64
	// Timestamp is when the frame was captured.
	Timestamp time.Time
	Width     int
	Height    int
	// Pix holds Width*Height*3 bytes, row-major, no padding.
	Pix []byte
	// TraceID identifies the frame in logs.
	TraceID string
}

// NewFrame allocates a black frame of the given size.
func NewFrame(w, h int) *Frame {
	return &Frame{Width: w, Height: h, Pix: make([]byte, w*h*3)}
}

// Size returns the frame dimensions.
func (f *Frame) Size() core.Size { return core.Size{W: f.Width, H: f.Height} }

// RGB returns the colour at (x, y).
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// SetRGB writes the colour at (x, y).
func (f *Frame) SetRGB(x, y int, r, g, b uint8) {
	i := (y*f.Width + x) * 3
	f.Pix[i] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
}

// Source is the frame-source contract consumed by the tick loop.
type Source interface {
	// RequestFrame blocks until the next frame is ready or ctx is done.
	RequestFrame(ctx context.Context) (*Frame, error)
	// Size reports the dimensions of every frame this source produces.
	Size() core.Size
	// Close waits for an in-flight request and releases the device.
	// It is safe to call more than once.
	Close() error
}
