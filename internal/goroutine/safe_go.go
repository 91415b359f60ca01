package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Logger is the minimal logging surface needed for panic reports.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// stderrLogger is the fallback used before the real logger is wired.
type stderrLogger struct{}

func (stderrLogger) Errorf(format string, args ...interface{}) {
	fmt.Printf("[ERROR] "+format+"\n", args...)
}

var defaultLogger Logger = stderrLogger{}

// SetLogger replaces the logger used for panic reports.
func SetLogger(l Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// SafeGo runs fn in a goroutine, recovering and logging any panic.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				defaultLogger.Errorf("panic in goroutine: %v\nstack:\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// SafeGoWithContext is SafeGo for context-aware work.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	SafeGo(func() { fn(ctx) })
}
