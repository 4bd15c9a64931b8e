package api

import (
	"time"

	"github.com/itchan-dev/forum/shared/domain"
)

// Request DTOs

type CreateDiscussionRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

// Response DTOs

// DiscussionSummaryResponse is one row of the discussion list
type DiscussionSummaryResponse struct {
	domain.DiscussionMetadata
	Preview         string `json:"preview"`
	CreatedLabel    string `json:"created_label"`
	LastActiveLabel string `json:"last_active_label"`
}

// DiscussionResponse is a full discussion with rendered messages
type DiscussionResponse struct {
	domain.DiscussionMetadata
	CreatedLabel    string            `json:"created_label"`
	LastActiveLabel string            `json:"last_active_label"`
	Messages        []MessageResponse `json:"messages"`
}

type DiscussionListResponse struct {
	Filter      domain.Filter               `json:"filter"`
	Discussions []DiscussionSummaryResponse `json:"discussions"`
}

// CreateDiscussionResponse carries the page state after creation: the new
// discussion is selected and the form is closed.
type CreateDiscussionResponse struct {
	Id    domain.DiscussionId `json:"id"`
	State domain.ViewState    `json:"state"`
}

// ForumPageResponse is the whole page as seen by one viewer
type ForumPageResponse struct {
	State       domain.ViewState            `json:"state"`
	Discussions []DiscussionSummaryResponse `json:"discussions"`
	Selected    *DiscussionResponse         `json:"selected,omitempty"`
}

// previewLength is the number of runes of the opening message shown in lists
const previewLength = 140

// Renderer is what the response builders need to present text and time.
type Renderer interface {
	HTML(text string) string
}

func NewDiscussionSummary(d domain.Discussion, now time.Time, label func(t, now time.Time) string) DiscussionSummaryResponse {
	return DiscussionSummaryResponse{
		DiscussionMetadata: d.DiscussionMetadata,
		Preview:            preview(d),
		CreatedLabel:       label(d.CreatedAt, now),
		LastActiveLabel:    label(d.LastActiveAt, now),
	}
}

func NewDiscussionResponse(d domain.Discussion, now time.Time, r Renderer, label func(t, now time.Time) string) DiscussionResponse {
	messages := make([]MessageResponse, 0, len(d.Messages))
	for _, m := range d.Messages {
		messages = append(messages, NewMessageResponse(m, now, r, label))
	}
	return DiscussionResponse{
		DiscussionMetadata: d.DiscussionMetadata,
		CreatedLabel:       label(d.CreatedAt, now),
		LastActiveLabel:    label(d.LastActiveAt, now),
		Messages:           messages,
	}
}

func preview(d domain.Discussion) string {
	if len(d.Messages) == 0 {
		return ""
	}
	text := d.OpMessage().Text
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "…"
}
