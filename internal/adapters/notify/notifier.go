// Package notify surfaces submission outcomes to the user the way a toast
// does: fire-and-forget, never blocking the submitting flow.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"voyage_booking/internal/domain"
)

// Toaster coalesces notifications per kind: within the window, repeated
// notifications of the same kind collapse into the first one, so rapid
// repeated failures don't stack duplicate toasts.
type Toaster struct {
	log    zerolog.Logger
	window time.Duration

	mu      sync.Mutex
	lastAt  map[domain.NoticeKind]time.Time
	emitted map[domain.NoticeKind]int
}

const DefaultWindow = 3 * time.Second

func New(log zerolog.Logger, window time.Duration) *Toaster {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Toaster{
		log:     log,
		window:  window,
		lastAt:  make(map[domain.NoticeKind]time.Time),
		emitted: make(map[domain.NoticeKind]int),
	}
}

// Notify never blocks: the coalescing decision is taken synchronously
// under a mutex and the emission itself happens on its own goroutine.
func (t *Toaster) Notify(kind domain.NoticeKind, message string) {
	t.mu.Lock()
	now := time.Now()
	if last, ok := t.lastAt[kind]; ok && now.Sub(last) < t.window {
		t.mu.Unlock()
		return
	}
	t.lastAt[kind] = now
	t.emitted[kind]++
	t.mu.Unlock()

	go func() {
		ev := t.log.Info()
		if kind == domain.NoticeError {
			ev = t.log.Warn()
		}
		ev.Str("kind", string(kind)).Str("message", message).Msg("notification")
	}()
}

// Emitted reports how many notifications of a kind actually surfaced.
func (t *Toaster) Emitted(kind domain.NoticeKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.emitted[kind]
}
