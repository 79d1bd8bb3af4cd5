// ABOUTME: Single-shot resettable completion signal
// ABOUTME: Channel-based event the completion callback sets and Unload waits on
package sound

import "sync"

// completion is closed once per submission. A fresh completion starts
// signaled, so waiting on a handle that never played returns at once.
type completion struct {
	mu    sync.Mutex
	ch    chan struct{}
	fired bool
}

func newCompletion() *completion {
	ch := make(chan struct{})
	close(ch)
	return &completion{ch: ch, fired: true}
}

// reset re-arms the signal for the next submission
func (c *completion) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fired {
		c.ch = make(chan struct{})
		c.fired = false
	}
}

// signal wakes every current and future waiter until the next reset
func (c *completion) signal() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fired {
		close(c.ch)
		c.fired = true
	}
}

// wait returns the channel closed by the next signal
func (c *completion) wait() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ch
}
