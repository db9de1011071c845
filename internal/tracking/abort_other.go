//go:build !darwin || !cgo

package tracking

import (
	"context"

	"github.com/sirupsen/logrus"
)

// AbortOnKey cannot listen for keys in this build; the returned context is
// only cancelled through its CancelFunc or parent.
func AbortOnKey(parent context.Context, key string, log logrus.FieldLogger) (context.Context, context.CancelFunc) {
	if key != "" {
		log.WithField("key", key).Warn("abort key needs darwin with cgo, ignoring")
	}
	return context.WithCancel(parent)
}
