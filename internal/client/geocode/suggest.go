package geocode

import (
	"context"
	"sync"
	"time"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
)

// DefaultDebounce is the delay between the last keystroke and the lookup.
const DefaultDebounce = 300 * time.Millisecond

// minQueryLen mirrors the autocomplete behavior: shorter fragments clear the
// suggestion list without querying the provider.
const minQueryLen = 3

// Forwarder is the slice of Client the suggester needs.
type Forwarder interface {
	Forward(ctx context.Context, query string) ([]models.Place, error)
}

// Suggester debounces address-autocomplete lookups. Each Update supersedes
// the previous one: the pending timer is reset, the in-flight request's
// context is cancelled, and any response belonging to an older generation is
// discarded instead of delivered.
type Suggester struct {
	forwarder Forwarder
	delay     time.Duration

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

func NewSuggester(f Forwarder, delay time.Duration) *Suggester {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Suggester{forwarder: f, delay: delay}
}

// Update registers the latest typed fragment. deliver is invoked exactly
// once for the generation that survives: either immediately with nil for a
// too-short query, or with the lookup result after the debounce interval.
// Superseded generations never deliver.
func (s *Suggester) Update(query string, deliver func([]models.Place, error)) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.supersedeLocked()

	if len(query) < minQueryLen {
		s.mu.Unlock()
		deliver(nil, nil)
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		s.lookup(gen, query, deliver)
	})
	s.mu.Unlock()
}

// supersedeLocked stops the pending timer and cancels the in-flight request.
// Callers hold s.mu.
func (s *Suggester) supersedeLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Suggester) lookup(gen uint64, query string, deliver func([]models.Place, error)) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	places, err := s.forwarder.Forward(ctx, query)
	cancel()

	s.mu.Lock()
	stale := gen != s.gen
	if !stale {
		s.cancel = nil
	}
	s.mu.Unlock()
	if stale {
		return
	}

	deliver(places, err)
}

// Close cancels any pending or in-flight lookup.
func (s *Suggester) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.supersedeLocked()
}
