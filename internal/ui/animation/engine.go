package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains pulse timing values.
type Config struct {
	// Frame is how long each frame stays on screen.
	Frame Range
	// Rest is the pause on the first frame after every full pass.
	Rest Range
}

// DefaultConfig returns a gentle attention pulse.
func DefaultConfig() Config {
	return Config{
		Frame: Range{Min: 450 * time.Millisecond, Max: 600 * time.Millisecond},
		Rest:  Range{Min: 1200 * time.Millisecond, Max: 2 * time.Second},
	}
}

// Engine alternates icon frames on a background goroutine until stopped.
type Engine struct {
	mu          sync.Mutex
	config      Config
	updateFrame func(fyne.Resource)
	cancel      context.CancelFunc
	done        chan struct{}
	rng         *rand.Rand
}

// New creates a new animation engine. updateFrame is called from the engine's
// goroutine.
func New(config Config, updateFrame func(fyne.Resource)) *Engine {
	return &Engine{
		config:      config,
		updateFrame: updateFrame,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Pulse starts cycling frames, replacing any running pulse. A single frame is
// shown once and left in place.
func (engine *Engine) Pulse(ctx context.Context, frames []fyne.Resource) {
	if len(frames) == 0 {
		engine.Stop()
		return
	}
	engine.start(ctx, func(runCtx context.Context) {
		engine.updateFrame(frames[0])
		if len(frames) == 1 {
			return
		}
		for {
			for _, frame := range frames[1:] {
				if !sleepWithContext(runCtx, engine.sample(engine.config.Frame)) {
					return
				}
				engine.updateFrame(frame)
			}
			if !sleepWithContext(runCtx, engine.sample(engine.config.Frame)) {
				return
			}
			engine.updateFrame(frames[0])
			if !sleepWithContext(runCtx, engine.sample(engine.config.Rest)) {
				return
			}
		}
	})
}

// Stop terminates any active animation and waits for its goroutine to exit.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel := engine.cancel
	done := engine.done
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.Stop()

	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

func (engine *Engine) sample(value Range) time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return value.Random(engine.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
