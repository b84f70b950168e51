package catalog

// DefaultWindowStep is how many products each reveal adds.
const DefaultWindowStep = 10

// Window implements the grid's incremental reveal: the first step items are
// visible initially and each Reveal (triggered when the scroll sentinel
// enters the viewport) shows step more, capped at the current total. Any
// query change resets the window.
type Window struct {
	step    int
	visible int
	total   int
}

// NewWindow creates a window revealing step items at a time. A step of 0 or
// less falls back to DefaultWindowStep.
func NewWindow(step int) *Window {
	if step <= 0 {
		step = DefaultWindowStep
	}
	return &Window{step: step, visible: step}
}

// SetTotal records the size of the current filtered result set.
func (w *Window) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	w.total = total
}

// Visible reports how many items the grid should show right now.
func (w *Window) Visible() int {
	if w.visible > w.total {
		return w.total
	}
	return w.visible
}

// Exhausted reports whether every item is already visible.
func (w *Window) Exhausted() bool {
	return w.visible >= w.total
}

// Reveal grows the window by one step and reports whether anything new
// became visible.
func (w *Window) Reveal() bool {
	if w.Exhausted() {
		return false
	}
	w.visible += w.step
	return true
}

// Reset shrinks the window back to its initial size. Call on every search,
// sort, or facet change.
func (w *Window) Reset() {
	w.visible = w.step
}

// Cut returns the visible prefix of items.
func Cut[T any](items []T, w *Window) []T {
	w.SetTotal(len(items))
	return items[:w.Visible()]
}
