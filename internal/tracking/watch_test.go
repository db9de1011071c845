package tracking

import (
	"context"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantwpatil/mouse/internal/mousetest"
)

func TestWatchDeliversChangesOnly(t *testing.T) {
	dev := mousetest.NewDevice(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		samples []Sample
	)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dev, 200, func(s Sample) {
			mu.Lock()
			samples = append(samples, s)
			mu.Unlock()
		})
	}()

	time.Sleep(40 * time.Millisecond)
	dev.SetPosition(2, 3)
	time.Sleep(40 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, samples, 2)
	assert.Equal(t, 1.0, samples[0].X)
	assert.Equal(t, 2.0, samples[1].X)
	assert.Equal(t, 3.0, samples[1].Y)
	assert.Greater(t, samples[1].Elapsed, samples[0].Elapsed)
}

func TestWatchReturnsPlatformError(t *testing.T) {
	dev := mousetest.NewDevice(0, 0)
	dev.FailPosition = true

	err := Watch(context.Background(), dev, 10, func(Sample) {
		t.Fatal("no sample expected")
	})
	assert.ErrorIs(t, err, mousetest.ErrInjected)
}

func TestWatchRejectsBadRate(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		dev := mousetest.NewDevice(0, 0)
		err := Watch(context.Background(), dev, rate, func(Sample) {
			t.Errorf("rate %v delivered a sample", rate)
		})
		assert.Error(t, err, rate)
	}
}

func TestAbortOnKeyWithoutKey(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	ctx, cancel := AbortOnKey(context.Background(), "", log)
	assert.NoError(t, ctx.Err())
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
