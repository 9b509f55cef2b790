package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameRecorder struct {
	mu     sync.Mutex
	frames []string
}

func (recorder *frameRecorder) update(resource fyne.Resource) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.frames = append(recorder.frames, resource.Name())
}

func (recorder *frameRecorder) snapshot() []string {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]string(nil), recorder.frames...)
}

func fastConfig() Config {
	return Config{
		Frame: Range{Min: time.Millisecond, Max: time.Millisecond},
		Rest:  Range{Min: time.Millisecond, Max: time.Millisecond},
	}
}

func TestRangeRandomStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	value := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 100; i++ {
		sample := value.Random(rng)
		assert.GreaterOrEqual(t, sample, time.Second)
		assert.Less(t, sample, 2*time.Second)
	}
	assert.Equal(t, time.Second, Range{Min: time.Second}.Random(rng))
}

func TestPulseAlternatesFrames(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(), recorder.update)
	frames := []fyne.Resource{
		fyne.NewStaticResource("a", nil),
		fyne.NewStaticResource("b", nil),
	}

	engine.Pulse(context.Background(), frames)
	require.Eventually(t, func() bool { return len(recorder.snapshot()) >= 4 }, time.Second, time.Millisecond)
	engine.Stop()

	seen := recorder.snapshot()
	assert.Equal(t, []string{"a", "b", "a", "b"}, seen[:4])

	settled := len(recorder.snapshot())
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, recorder.snapshot(), settled, "no frames after Stop")
}

func TestPulseSingleFrameShowsOnce(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(), recorder.update)

	engine.Pulse(context.Background(), []fyne.Resource{fyne.NewStaticResource("only", nil)})
	require.Eventually(t, func() bool { return len(recorder.snapshot()) == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	engine.Stop()

	assert.Equal(t, []string{"only"}, recorder.snapshot())
}

func TestPulseStopsWithContext(t *testing.T) {
	recorder := &frameRecorder{}
	engine := New(fastConfig(), recorder.update)
	ctx, cancel := context.WithCancel(context.Background())

	engine.Pulse(ctx, []fyne.Resource{fyne.NewStaticResource("a", nil), fyne.NewStaticResource("b", nil)})
	cancel()
	engine.Stop()

	settled := len(recorder.snapshot())
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, recorder.snapshot(), settled)
}
