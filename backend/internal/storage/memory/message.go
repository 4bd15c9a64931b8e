package memory

import (
	"github.com/itchan-dev/forum/shared/domain"
)

// AppendReply adds a message at the end of the discussion and bumps its
// activity. The store is unchanged on error.
func (s *Storage) AppendReply(id domain.DiscussionId, data domain.MessageCreationData) (domain.Message, error) {
	e, err := s.lookup(id)
	if err != nil {
		return domain.Message{}, err
	}
	if err := checkMessage(data); err != nil {
		return domain.Message{}, err
	}

	now := s.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	msg := domain.Message{
		Id:        domain.MsgId(len(e.d.Messages) + 1),
		Author:    data.Author,
		Text:      data.Text,
		CreatedAt: now,
	}
	e.d.Messages = append(e.d.Messages, msg)
	e.d.ReplyCount++
	if now.After(e.d.LastActiveAt) {
		e.d.LastActiveAt = now
	}
	return msg, nil
}
