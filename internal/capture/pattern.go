package capture

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"camera-trail/internal/core"

	"github.com/google/uuid"
)

// PatternConfig controls the synthetic scene.
type PatternConfig struct {
	Width  int
	Height int
	// Blobs is the number of pure-white spots moving across the scene.
	Blobs int
	// Radius of each spot in pixels.
	Radius int
	// Interval paces frames; zero delivers frames as fast as requested.
	Interval time.Duration
	Seed     int64
}

type blob struct {
	x, y   float64
	vx, vy float64
}

// PatternSource renders a dark noisy backdrop with bright moving spots. It
// never fails and is deterministic for a given seed.
type PatternSource struct {
	cfg    PatternConfig
	rng    *core.RNG
	blobs  []blob
	seq    uint64
	ticker *time.Ticker
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewPattern builds a pattern source.
func NewPattern(cfg PatternConfig) *PatternSource {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	if cfg.Radius <= 0 {
		cfg.Radius = 1
	}
	p := &PatternSource{cfg: cfg, rng: core.NewRNG(cfg.Seed), done: make(chan struct{})}
	for i := 0; i < cfg.Blobs; i++ {
		angle := p.rng.Range(0, 2*math.Pi)
		speed := p.rng.Range(2, 9)
		p.blobs = append(p.blobs, blob{
			x:  p.rng.Range(0, float64(cfg.Width)),
			y:  p.rng.Range(0, float64(cfg.Height)),
			vx: math.Cos(angle) * speed,
			vy: math.Sin(angle) * speed,
		})
	}
	if cfg.Interval > 0 {
		p.ticker = time.NewTicker(cfg.Interval)
	}
	slog.Info("capture: pattern source ready",
		"resolution", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"blobs", cfg.Blobs,
		"seed", cfg.Seed,
	)
	return p
}

// Size reports the frame dimensions.
func (p *PatternSource) Size() core.Size { return core.Size{W: p.cfg.Width, H: p.cfg.Height} }

// RequestFrame renders the next frame, waiting for the pacing interval. A
// wait in progress returns ErrClosed as soon as the source is closed.
func (p *PatternSource) RequestFrame(ctx context.Context) (*Frame, error) {
	if p.ticker != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.done:
			return nil, ErrClosed
		case <-p.ticker.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}

	f := NewFrame(p.cfg.Width, p.cfg.Height)
	for i := range f.Pix {
		f.Pix[i] = p.rng.Uint8n(48)
	}
	for i := range p.blobs {
		b := &p.blobs[i]
		p.stamp(f, int(b.x), int(b.y))
		b.x, b.vx = bounce(b.x+b.vx, b.vx, float64(p.cfg.Width-1))
		b.y, b.vy = bounce(b.y+b.vy, b.vy, float64(p.cfg.Height-1))
	}
	p.seq++
	f.Seq = p.seq
	f.Timestamp = time.Now()
	f.TraceID = uuid.New().String()
	return f, nil
}

func (p *PatternSource) stamp(f *Frame, cx, cy int) {
	r := p.cfg.Radius
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		y := cy + dy
		if y < 0 || y >= f.Height {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			x := cx + dx
			if x < 0 || x >= f.Width {
				continue
			}
			if dx*dx+dy*dy > r2 {
				continue
			}
			f.SetRGB(x, y, 255, 255, 255)
		}
	}
}

func bounce(pos, vel, limit float64) (float64, float64) {
	if pos < 0 {
		return -pos, -vel
	}
	if pos > limit {
		return 2*limit - pos, -vel
	}
	return pos, vel
}

// Close stops the pacing ticker and releases any waiting request.
func (p *PatternSource) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	if p.ticker != nil {
		p.ticker.Stop()
	}
	return nil
}
