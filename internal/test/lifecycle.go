package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects the hooks the server and worker register, so
// tests can drive OnStart/OnStop directly instead of running an fx app.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records a hook for the test to invoke.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals when the server requests application shutdown,
// e.g. after a listener failure.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown performs a non-blocking notification on Called.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
