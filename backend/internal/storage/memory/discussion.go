package memory

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
)

func (s *Storage) CreateDiscussion(data domain.DiscussionCreationData) (domain.Discussion, error) {
	if strings.TrimSpace(data.Title) == "" {
		return domain.Discussion{}, &errors.ValidationError{Field: "title", Message: "is empty"}
	}
	if err := checkMessage(data.OpMessage); err != nil {
		return domain.Discussion{}, err
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e := &entry{d: domain.Discussion{
		DiscussionMetadata: domain.DiscussionMetadata{
			Id:           domain.DiscussionId(len(s.discussions) + 1),
			Title:        data.Title,
			Author:       data.OpMessage.Author,
			CreatedAt:    now,
			LastActiveAt: now,
		},
		Messages: []domain.Message{{
			Id:        1,
			Author:    data.OpMessage.Author,
			Text:      data.OpMessage.Text,
			CreatedAt: now,
		}},
	}}

	s.discussions = slices.Insert(s.discussions, 0, e)
	s.byId[e.d.Id] = e

	// e is not visible to readers yet, no need for e.mu
	return e.d.Clone(), nil
}

func (s *Storage) GetDiscussion(id domain.DiscussionId) (domain.Discussion, error) {
	e, err := s.lookup(id)
	if err != nil {
		return domain.Discussion{}, err
	}
	return e.snapshot(), nil
}

// RecordView counts one more view of the discussion and returns it.
func (s *Storage) RecordView(id domain.DiscussionId) (domain.Discussion, error) {
	e, err := s.lookup(id)
	if err != nil {
		return domain.Discussion{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.d.ViewCount++
	return e.d.Clone(), nil
}

// ListDiscussions returns a snapshot of the discussions ordered/selected by
// filter. identity only matters for FilterMine.
func (s *Storage) ListDiscussions(filter domain.Filter, identity *domain.Identity) ([]domain.Discussion, error) {
	switch filter {
	case domain.FilterNone, domain.FilterPopular, domain.FilterRecent, domain.FilterMine:
	default:
		return nil, &errors.ValidationError{Field: "filter", Message: fmt.Sprintf("unknown filter %q", filter)}
	}

	if filter == domain.FilterMine && identity == nil {
		return []domain.Discussion{}, nil
	}

	s.mu.RLock()
	entries := slices.Clone(s.discussions)
	s.mu.RUnlock()

	result := make([]domain.Discussion, 0, len(entries))
	for _, e := range entries {
		d := e.snapshot()
		if filter == domain.FilterMine && d.Author != identity.Name {
			continue
		}
		result = append(result, d)
	}

	switch filter {
	case domain.FilterPopular:
		slices.SortStableFunc(result, func(a, b domain.Discussion) int {
			return cmp.Compare(b.ViewCount, a.ViewCount)
		})
	case domain.FilterRecent:
		slices.SortStableFunc(result, func(a, b domain.Discussion) int {
			return b.LastActiveAt.Compare(a.LastActiveAt)
		})
	}
	return result, nil
}

// Seed appends already built discussions after the existing ones, keeping
// their order. Ids are assigned the way CreateDiscussion does and messages
// are renumbered 1..n; counters and timestamps are taken as given.
func (s *Storage) Seed(discussions []domain.Discussion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range discussions {
		if len(d.Messages) == 0 {
			return fmt.Errorf("seed discussion #%d (%q) has no messages", i+1, d.Title)
		}
		d = d.Clone()
		d.Id = domain.DiscussionId(len(s.discussions) + 1)
		for j := range d.Messages {
			d.Messages[j].Id = domain.MsgId(j + 1)
		}
		if d.Author == "" {
			d.Author = d.Messages[0].Author
		}

		e := &entry{d: d}
		s.discussions = append(s.discussions, e)
		s.byId[d.Id] = e
	}
	return nil
}
