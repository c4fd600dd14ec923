package tui

import (
	"time"

	"github.com/vovakirdan/park-guardian/internal/core"
)

// holdWindow is how long a movement or fire key counts as held after the
// terminal last reported it. Terminals send no key-up events, only
// auto-repeat, so a key is considered released once repeats stop.
const holdWindow = 150 * time.Millisecond

// heldInput turns discrete key events into per-tick input frames.
type heldInput struct {
	held    map[core.Action]time.Duration
	pressed core.InputFrame
	pointer *core.Pointer
}

func newHeldInput() *heldInput {
	return &heldInput{
		held:    make(map[core.Action]time.Duration),
		pressed: core.NewInputFrame(),
	}
}

func holdable(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire:
		return true
	}
	return false
}

// Press records a key event.
func (h *heldInput) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	h.pressed.Set(a)
	if holdable(a) {
		h.held[a] = holdWindow
	}
}

// Release drops a held action immediately, used for mouse button release.
func (h *heldInput) Release(a core.Action) {
	delete(h.held, a)
}

// Aim records the latest pointer cell.
func (h *heldInput) Aim(x, y int) {
	h.pointer = &core.Pointer{X: x, Y: y}
}

// Frame builds the input for one tick of length dt. With hold set, movement
// and fire keys pressed within the hold window stay active; otherwise only
// events since the previous frame count, so menus move one row per press.
func (h *heldInput) Frame(dt time.Duration, hold bool) core.InputFrame {
	frame := h.pressed.Clone()
	if hold {
		for a := range h.held {
			frame.Set(a)
		}
	}
	if h.pointer != nil {
		p := *h.pointer
		frame.Pointer = &p
	}

	for a, left := range h.held {
		if left -= dt; left <= 0 {
			delete(h.held, a)
		} else {
			h.held[a] = left
		}
	}
	h.pressed.Clear()
	return frame
}

// Reset forgets all held keys.
func (h *heldInput) Reset() {
	for a := range h.held {
		delete(h.held, a)
	}
	h.pressed.Clear()
}
