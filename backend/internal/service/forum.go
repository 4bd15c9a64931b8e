package service

import (
	"strings"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/logger"
)

type ForumService interface {
	CreateDiscussion(identity *domain.Identity, title, text string) (domain.Discussion, error)
	AppendReply(identity *domain.Identity, id domain.DiscussionId, text string) (domain.Message, error)
	ListDiscussions(identity *domain.Identity, filter domain.Filter) ([]domain.Discussion, error)
	SelectDiscussion(id domain.DiscussionId) (domain.Discussion, error)
	ViewDiscussion(id domain.DiscussionId) (domain.Discussion, error)
	Page(identity *domain.Identity, state domain.ViewState) (domain.ForumPage, error)
}

type ForumStorage interface {
	CreateDiscussion(data domain.DiscussionCreationData) (domain.Discussion, error)
	AppendReply(id domain.DiscussionId, data domain.MessageCreationData) (domain.Message, error)
	ListDiscussions(filter domain.Filter, identity *domain.Identity) ([]domain.Discussion, error)
	GetDiscussion(id domain.DiscussionId) (domain.Discussion, error)
	RecordView(id domain.DiscussionId) (domain.Discussion, error)
}

type ForumValidator interface {
	Title(title domain.DiscussionTitle) error
	Text(text domain.MsgText) error
}

type Forum struct {
	storage   ForumStorage
	validator ForumValidator
}

func NewForum(storage ForumStorage, validator ForumValidator) *Forum {
	return &Forum{storage, validator}
}

var errNoIdentity = &errors.ValidationError{Field: "author", Message: "sign in to post"}

func (f *Forum) CreateDiscussion(identity *domain.Identity, title, text string) (domain.Discussion, error) {
	const op = "create_discussion"
	if identity == nil || identity.Name == "" {
		return domain.Discussion{}, rejected(op, errNoIdentity)
	}

	title = strings.TrimSpace(title)
	text = strings.TrimSpace(text)
	if err := f.validator.Title(title); err != nil {
		return domain.Discussion{}, rejected(op, err)
	}
	if err := f.validator.Text(text); err != nil {
		return domain.Discussion{}, rejected(op, err)
	}

	d, err := f.storage.CreateDiscussion(domain.DiscussionCreationData{
		Title:     title,
		OpMessage: domain.MessageCreationData{Author: identity.Name, Text: text},
	})
	if err != nil {
		return domain.Discussion{}, rejected(op, err)
	}

	discussionsCreated.Inc()
	logger.Log.Info("discussion created", "component", "forum", "discussion_id", d.Id, "author", d.Author)
	return d, nil
}

func (f *Forum) AppendReply(identity *domain.Identity, id domain.DiscussionId, text string) (domain.Message, error) {
	const op = "append_reply"
	if identity == nil || identity.Name == "" {
		return domain.Message{}, rejected(op, errNoIdentity)
	}

	text = strings.TrimSpace(text)
	if err := f.validator.Text(text); err != nil {
		return domain.Message{}, rejected(op, err)
	}

	msg, err := f.storage.AppendReply(id, domain.MessageCreationData{Author: identity.Name, Text: text})
	if err != nil {
		return domain.Message{}, rejected(op, err)
	}

	repliesCreated.Inc()
	logger.Log.Info("reply appended", "component", "forum", "discussion_id", id, "message_id", msg.Id, "author", msg.Author)
	return msg, nil
}

func (f *Forum) ListDiscussions(identity *domain.Identity, filter domain.Filter) ([]domain.Discussion, error) {
	return f.storage.ListDiscussions(filter, identity)
}

// SelectDiscussion is a pure lookup.
func (f *Forum) SelectDiscussion(id domain.DiscussionId) (domain.Discussion, error) {
	return f.storage.GetDiscussion(id)
}

// ViewDiscussion is a lookup made on behalf of a reader; it counts a view.
func (f *Forum) ViewDiscussion(id domain.DiscussionId) (domain.Discussion, error) {
	return f.storage.RecordView(id)
}

// Page assembles the forum page for state. A selection pointing at a
// discussion that does not exist is dropped instead of failing the page.
func (f *Forum) Page(identity *domain.Identity, state domain.ViewState) (domain.ForumPage, error) {
	list, err := f.storage.ListDiscussions(state.Filter, identity)
	if err != nil {
		return domain.ForumPage{}, err
	}

	page := domain.ForumPage{Discussions: list}
	if state.Selected != nil {
		d, err := f.storage.GetDiscussion(*state.Selected)
		switch {
		case err == nil:
			page.Selected = &d
		case errors.Is[*errors.NotFoundError](err):
			logger.Log.Debug("dropping stale selection", "component", "forum", "discussion_id", *state.Selected)
			state = state.Deselect()
		default:
			return domain.ForumPage{}, err
		}
	}
	page.State = state
	return page, nil
}
