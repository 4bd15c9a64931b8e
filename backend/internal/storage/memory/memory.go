package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/itchan-dev/forum/backend/internal/service"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
)

// Storage keeps every discussion in process memory.
//
// Locking: mu guards the discussion list and the id index. Each entry has
// its own mutex for its messages and counters, so replies to different
// discussions do not contend. Lock order is always Storage.mu then entry.mu.
type Storage struct {
	mu          sync.RWMutex
	discussions []*entry // natural order: most recently created first
	byId        map[domain.DiscussionId]*entry

	now func() time.Time
}

type entry struct {
	mu sync.Mutex
	d  domain.Discussion
}

// Ensure Storage struct implements the interface at compile time.
var _ service.ForumStorage = (*Storage)(nil)

type Option func(*Storage)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

func New(opts ...Option) *Storage {
	s := &Storage{
		byId: make(map[domain.DiscussionId]*entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Count returns the number of discussions.
func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.discussions)
}

func (s *Storage) lookup(id domain.DiscussionId) (*entry, error) {
	s.mu.RLock()
	e, ok := s.byId[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &errors.NotFoundError{Id: id}
	}
	return e, nil
}

func (e *entry) snapshot() domain.Discussion {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.d.Clone()
}

func checkMessage(data domain.MessageCreationData) error {
	if data.Author == "" {
		return &errors.ValidationError{Field: "author", Message: "identity is required"}
	}
	if strings.TrimSpace(data.Text) == "" {
		return &errors.ValidationError{Field: "text", Message: "is empty"}
	}
	return nil
}
