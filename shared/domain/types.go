package domain

type (
	AuthorName = string

	DiscussionId    = int64
	DiscussionTitle = string

	MsgId   = int64
	MsgText = string
)
