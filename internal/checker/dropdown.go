package checker

import (
	"sync"
	"time"

	"leadengine/pkg/platform/timer"
)

// BlurDebounce delays hiding the recent-searches list so a click on an item
// lands before the list disappears.
const BlurDebounce = 200 * time.Millisecond

// Dropdown is the visibility state of the recent-searches list.
type Dropdown struct {
	mu      sync.Mutex
	visible bool
	closed  bool
	items   func() []string
	hide    *timer.Timer
}

// NewDropdown creates a hidden dropdown. items supplies the current history.
func NewDropdown(items func() []string, opts ...timer.Option) *Dropdown {
	return &Dropdown{
		items: items,
		hide:  timer.New(opts...),
	}
}

// Focus cancels a pending hide and shows the list when there is history.
func (d *Dropdown) Focus() {
	d.hide.Cancel()
	show := len(d.items()) > 0

	d.mu.Lock()
	defer d.mu.Unlock()
	if show && !d.closed {
		d.visible = true
	}
}

// Blur schedules the list to hide after BlurDebounce.
func (d *Dropdown) Blur() {
	d.hide.Schedule(BlurDebounce, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.visible = false
	})
}

// Select picks a past code. It beats any pending blur, hides the list and
// returns the code to re-check.
func (d *Dropdown) Select(code string) string {
	d.hide.Cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.visible = false
	return code
}

// Close tears the dropdown down. Pending hides never fire afterwards and the
// list cannot be shown again.
func (d *Dropdown) Close() {
	d.hide.Dispose()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.visible = false
}

// Visible reports whether the list is shown.
func (d *Dropdown) Visible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible
}

// Items returns the entries the list would render.
func (d *Dropdown) Items() []string {
	return d.items()
}
