package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/itchan-dev/forum/shared/domain"
)

// SeedDiscussion is the on-disk form of a fixture discussion.
// Ages are relative to the moment the seed is loaded.
type SeedDiscussion struct {
	Title         string        `yaml:"title"`
	Author        string        `yaml:"author"`
	Views         int           `yaml:"views"`
	Replies       *int          `yaml:"replies"` // overrides len(messages)-1 when set
	LastActiveAgo time.Duration `yaml:"last_active_ago"`
	Messages      []SeedMessage `yaml:"messages"`
}

type SeedMessage struct {
	Author string        `yaml:"author"`
	Text   string        `yaml:"text"`
	Ago    time.Duration `yaml:"ago"`
}

// LoadSeed reads and checks a seed file. Discussions are listed newest first,
// the same order the forum shows them in.
func LoadSeed(path string) ([]SeedDiscussion, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed []SeedDiscussion
	if err := yaml.UnmarshalStrict(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	for i, d := range seed {
		if err := d.check(); err != nil {
			return nil, fmt.Errorf("seed discussion #%d: %w", i+1, err)
		}
	}
	return seed, nil
}

func (d SeedDiscussion) check() error {
	if d.Title == "" {
		return fmt.Errorf("title is empty")
	}
	if d.Author == "" {
		return fmt.Errorf("author is empty")
	}
	if len(d.Messages) == 0 {
		return fmt.Errorf("%q has no opening message", d.Title)
	}
	for j, m := range d.Messages {
		if m.Author == "" || m.Text == "" {
			return fmt.Errorf("%q message #%d needs author and text", d.Title, j+1)
		}
	}
	return nil
}

// ToDomain converts fixtures into discussions. Ids are left zero so the store
// assigns them.
func ToDomain(seed []SeedDiscussion, now time.Time) []domain.Discussion {
	out := make([]domain.Discussion, 0, len(seed))
	for _, s := range seed {
		msgs := make([]domain.Message, len(s.Messages))
		for i, m := range s.Messages {
			msgs[i] = domain.Message{
				Author:    m.Author,
				Text:      m.Text,
				CreatedAt: now.Add(-m.Ago),
			}
		}
		replies := len(msgs) - 1
		if s.Replies != nil {
			replies = *s.Replies
		}
		lastActive := msgs[len(msgs)-1].CreatedAt
		if s.LastActiveAgo != 0 {
			lastActive = now.Add(-s.LastActiveAgo)
		}
		out = append(out, domain.Discussion{
			DiscussionMetadata: domain.DiscussionMetadata{
				Title:        s.Title,
				Author:       s.Author,
				ReplyCount:   replies,
				ViewCount:    s.Views,
				CreatedAt:    msgs[0].CreatedAt,
				LastActiveAt: lastActive,
			},
			Messages: msgs,
		})
	}
	return out
}
