package api

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Observer is notified about hook traffic and table lifetimes. Implementations
// must be safe for concurrent use and must not call back into this package.
type Observer interface {
	HookInvoked(slot string, status int, elapsed time.Duration)
	HookFailed(slot, kind string)
	TableAllocated(kind string)
	TableReleased(kind string)
}

type nopObserver struct{}

func (nopObserver) HookInvoked(string, int, time.Duration) {}
func (nopObserver) HookFailed(string, string)              {}
func (nopObserver) TableAllocated(string)                  {}
func (nopObserver) TableReleased(string)                   {}

type observerHolder struct{ Observer }

var (
	observer atomic.Pointer[observerHolder]
	logger   atomic.Pointer[zap.Logger]
)

func init() {
	observer.Store(&observerHolder{nopObserver{}})
	logger.Store(zap.NewNop())
}

// SetObserver installs o for all objects. nil restores the no-op observer.
func SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	observer.Store(&observerHolder{o})
}

// SetLogger installs the logger used for interop failures. nil restores the
// no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func currentObserver() Observer { return observer.Load().Observer }

func currentLogger() *zap.Logger { return logger.Load() }
