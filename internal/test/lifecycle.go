package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks registered during wiring so tests can
// fire OnStart and OnStop by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook without invoking it.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called whenever a graceful shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies the test about the termination request. The send never
// blocks, so repeated shutdowns are safe.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
