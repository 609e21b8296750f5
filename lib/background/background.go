// Package background runs periodic work alongside a long operation,
// e.g. progress messages while a large diagram compiles.
package background

import (
	"sync"
	"time"
)

// Repeat calls do every interval until the returned cancel is called.
// cancel may be called more than once.
func Repeat(do func(), interval time.Duration) (cancel func()) {
	t := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer t.Stop()
		for {
			select {
			case <-t.C:
				do()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
