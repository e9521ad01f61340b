// Package slideshow manages the automatic cycling of artworks: the
// ordered list, the current display index, the slide timer, and the
// handoff with the prefetch scheduler.
package slideshow

import (
	"sync"
	"time"

	"artslide/internal/artwork"
	"artslide/internal/pipeline"
	"artslide/internal/prefetch"
)

const defaultSlideDuration = 10 * time.Second

// State is the controller's coarse display state.
type State int

const (
	// StateEmpty means no artworks were discovered (or none could be
	// decoded); the presentation shows a placeholder.
	StateEmpty State = iota
	// StateBootstrapping means artworks exist but none has been
	// processed yet.
	StateBootstrapping
	// StateDisplaying means a processed artwork is on screen and the
	// slide timer is running.
	StateDisplaying
)

// Processor is the synchronous face of the image pipeline, used for
// the bootstrap load. Satisfied by pipeline.Processor.
type Processor interface {
	Process(info artwork.Info) (*pipeline.Result, error)
}

// Controller drives the slideshow state machine. Tick is evaluated
// once per render tick by whatever drives the presentation; it is a
// function of the supplied clock, so any driver (or test) can call it.
type Controller struct {
	mu sync.Mutex

	artworks []artwork.Info
	proc     Processor
	sched    *prefetch.Scheduler
	duration time.Duration

	index      int
	current    *pipeline.Result
	lastChange time.Time
	paused     bool

	// nextIndex is the artwork targeted by the in-flight or ready
	// prefetch. It can run ahead of index+1 when items fail to decode.
	nextIndex int
	// stalled is set when every candidate prefetch target has failed;
	// no further dispatches are attempted.
	stalled bool
	// bootstrapFailed is set when no artwork at all could be decoded.
	bootstrapFailed bool

	// OnDisplay, if set, is called with the artwork that just became
	// current. Used to persist resume state and for logging. The
	// callback runs with the controller locked and must not call back
	// into it.
	OnDisplay func(info artwork.Info)
}

// NewController creates a Controller over the discovered artworks.
// A non-positive duration falls back to the 10s default. startIndex
// selects the first artwork shown (resume support); out-of-range
// values mean index 0.
func NewController(artworks []artwork.Info, proc Processor, duration time.Duration, startIndex int) *Controller {
	if duration <= 0 {
		duration = defaultSlideDuration
	}
	if startIndex < 0 || startIndex >= len(artworks) {
		startIndex = 0
	}
	return &Controller{
		artworks: artworks,
		proc:     proc,
		sched:    prefetch.NewScheduler(proc),
		duration: duration,
		index:    startIndex,
	}
}

// State returns the coarse display state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case len(c.artworks) == 0 || c.bootstrapFailed:
		return StateEmpty
	case c.current == nil:
		return StateBootstrapping
	default:
		return StateDisplaying
	}
}

// Current returns the processed artwork on display, or nil.
func (c *Controller) Current() *pipeline.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// CurrentInfo returns the artwork record backing the display. Only
// meaningful in StateDisplaying.
func (c *Controller) CurrentInfo() artwork.Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index < 0 || c.index >= len(c.artworks) {
		return artwork.Info{}
	}
	return c.artworks[c.index]
}

// Count returns the number of discovered artworks.
func (c *Controller) Count() int {
	return len(c.artworks)
}

// Index returns the current display index.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Interval returns the configured slide duration.
func (c *Controller) Interval() time.Duration {
	return c.duration
}

// TogglePlayPause toggles the play/pause state. A paused slideshow
// never auto-advances; manual advance still works.
func (c *Controller) TogglePlayPause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
}

// IsPaused returns true if the slideshow is currently paused.
func (c *Controller) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Tick evaluates one step of the state machine at the given time and
// reports whether the displayed artwork changed. It never blocks on
// image work: the only synchronous processing is the bootstrap load,
// before anything is on screen.
func (c *Controller) Tick(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.artworks) == 0 || c.bootstrapFailed {
		return false
	}
	if c.current == nil {
		return c.bootstrap(now)
	}

	c.pollPrefetch()

	// Auto-advance is gated on readiness: when the timer has elapsed
	// but the prefetch has not landed, hold the current image without
	// re-arming the timer. Nothing is ever skipped.
	if !c.paused && now.Sub(c.lastChange) >= c.duration {
		return c.promoteIfReady(now)
	}
	return false
}

// Advance moves to the next artwork on user request, bypassing the
// timer. Like the timed advance it is gated on prefetch readiness.
func (c *Controller) Advance(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return false
	}
	c.pollPrefetch()
	return c.promoteIfReady(now)
}

// Close stops the background worker.
func (c *Controller) Close() {
	c.sched.Close()
}

// bootstrap synchronously processes the first displayable artwork,
// skipping any that fail to decode. Called with c.mu held.
func (c *Controller) bootstrap(now time.Time) bool {
	n := len(c.artworks)
	for tries := 0; tries < n; tries++ {
		i := (c.index + tries) % n
		res, err := c.proc.Process(c.artworks[i])
		if err != nil {
			continue
		}
		c.index = i
		c.current = res
		c.lastChange = now
		c.requestPrefetch()
		c.notifyDisplay()
		return true
	}
	c.bootstrapFailed = true
	return false
}

// pollPrefetch observes job completion and reacts to a failed decode
// by retargeting the prefetch at the item after the failed one. After
// a full cycle of failures it gives up; the current image then stays
// up indefinitely. Called with c.mu held.
func (c *Controller) pollPrefetch() {
	c.sched.Poll()
	if !c.sched.Failed() {
		return
	}
	c.sched.ClearFailure()
	c.nextIndex = (c.nextIndex + 1) % len(c.artworks)
	if c.nextIndex == c.index {
		c.stalled = true
		return
	}
	c.sched.Request(c.artworks[c.nextIndex])
}

// promoteIfReady swaps the handed-off result in as the current image
// and issues the next prefetch. Called with c.mu held.
func (c *Controller) promoteIfReady(now time.Time) bool {
	res := c.sched.TakeIfReady()
	if res == nil {
		return false
	}
	c.index = c.nextIndex
	c.current = res
	c.lastChange = now
	c.requestPrefetch()
	c.notifyDisplay()
	return true
}

// requestPrefetch dispatches processing of the artwork following the
// current one. With a single artwork there is nothing to prefetch and
// no background work ever starts. Called with c.mu held.
func (c *Controller) requestPrefetch() {
	if len(c.artworks) <= 1 || c.stalled {
		return
	}
	c.nextIndex = (c.index + 1) % len(c.artworks)
	c.sched.Request(c.artworks[c.nextIndex])
}

func (c *Controller) notifyDisplay() {
	if c.OnDisplay != nil {
		c.OnDisplay(c.artworks[c.index])
	}
}
