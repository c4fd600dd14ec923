package campaign

import "time"

// RunClock accumulates combat time across the rounds of one run.
type RunClock struct {
	elapsed time.Duration
	running bool
	stopped bool
}

// Start resumes counting. A stopped clock stays stopped.
func (c *RunClock) Start() {
	if !c.stopped {
		c.running = true
	}
}

// Pause suspends counting until the next Start.
func (c *RunClock) Pause() {
	c.running = false
}

// Stop freezes the clock for the rest of the run.
func (c *RunClock) Stop() {
	c.running = false
	c.stopped = true
}

// Tick adds dt while running.
func (c *RunClock) Tick(dt time.Duration) {
	if c.running {
		c.elapsed += dt
	}
}

// Elapsed returns the accumulated time.
func (c *RunClock) Elapsed() time.Duration {
	return c.elapsed
}
