//go:build darwin && cgo

package tracking

import (
	"context"
	"sync"

	hook "github.com/robotn/gohook"
	"github.com/sirupsen/logrus"
)

// gohook keeps a single global event loop.
var hookMu sync.Mutex

// AbortOnKey returns a context that is cancelled when key is pressed
// anywhere on the system. Calling the returned CancelFunc stops listening.
func AbortOnKey(parent context.Context, key string, log logrus.FieldLogger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	if key == "" {
		return ctx, cancel
	}

	hookMu.Lock()
	hook.Register(hook.KeyDown, []string{key}, func(e hook.Event) {
		log.WithField("key", key).Info("abort key pressed")
		cancel()
	})
	events := hook.Start()
	done := hook.Process(events)

	go func() {
		<-ctx.Done()
		hook.End()
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			cancel()
			<-done
			hookMu.Unlock()
		})
	}
}
