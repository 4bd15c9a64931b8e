package api

import (
	"time"

	"github.com/itchan-dev/forum/shared/domain"
)

// Request DTOs

type CreateMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// Response DTOs

// MessageResponse carries the raw text plus its sanitized HTML rendering
type MessageResponse struct {
	domain.Message
	HTML         string `json:"html"`
	CreatedLabel string `json:"created_label"`
}

type CreateMessageResponse struct {
	Id           domain.MsgId        `json:"id"`
	DiscussionId domain.DiscussionId `json:"discussion_id"`
}

func NewMessageResponse(m domain.Message, now time.Time, r Renderer, label func(t, now time.Time) string) MessageResponse {
	return MessageResponse{
		Message:      m,
		HTML:         r.HTML(m.Text),
		CreatedLabel: label(m.CreatedAt, now),
	}
}
