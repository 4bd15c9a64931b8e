package domain

import (
	"time"
)

type MessageCreationData struct {
	Author AuthorName
	Text   MsgText
}

type Message struct {
	Id        MsgId      `json:"id"`
	Author    AuthorName `json:"author"`
	Text      MsgText    `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
}
