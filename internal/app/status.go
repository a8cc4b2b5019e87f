package app

import (
	"sync"

	"github.com/dshills/viewctl/internal/controller"
	"github.com/dshills/viewctl/internal/input/mouse"
)

const statusLines = 64

// statusLog keeps the most recent interaction lines for display.
type statusLog struct {
	mu    sync.Mutex
	buf   []string
	limit int
}

func newStatusLog(limit int) *statusLog {
	return &statusLog{limit: limit}
}

func (s *statusLog) add(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, line)
	if over := len(s.buf) - s.limit; over > 0 {
		s.buf = append(s.buf[:0], s.buf[over:]...)
	}
}

func (s *statusLog) lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.buf...)
}

// observe returns a consumer that records events dispatched on tier and
// never handles them.
func (s *statusLog) observe(tier controller.Tier) mouse.ConsumerFunc {
	return func(event mouse.InteractionEvent) bool {
		s.add(tier.String() + " " + event.String())
		return false
	}
}
