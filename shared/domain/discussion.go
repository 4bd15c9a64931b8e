package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type DiscussionCreationData struct {
	Title     DiscussionTitle
	OpMessage MessageCreationData
}

type DiscussionMetadata struct {
	Id           DiscussionId    `json:"id"`
	Title        DiscussionTitle `json:"title"`
	Author       AuthorName      `json:"author"`
	ReplyCount   int             `json:"reply_count"`
	ViewCount    int             `json:"view_count"`
	CreatedAt    time.Time       `json:"created_at"`
	LastActiveAt time.Time       `json:"last_active_at"`
}

type Discussion struct {
	DiscussionMetadata
	Messages []Message `json:"messages"`
}

// OpMessage returns the opening post. Every discussion has one.
func (d *Discussion) OpMessage() Message {
	return d.Messages[0]
}

// Clone returns a deep copy that shares no message storage with d.
func (d Discussion) Clone() Discussion {
	msgs := make([]Message, len(d.Messages))
	copy(msgs, d.Messages)
	d.Messages = msgs
	return d
}
