package handler

import (
	"net/http"
	"strconv"

	"github.com/itchan-dev/forum/shared/api"
	"github.com/itchan-dev/forum/shared/domain"
	mw "github.com/itchan-dev/forum/shared/middleware"
	"github.com/itchan-dev/forum/shared/utils"
)

func (h *Handler) ListDiscussions(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.forum.ListDiscussions(mw.GetIdentityFromContext(r), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.DiscussionListResponse{
		Filter:      filter,
		Discussions: h.summaries(list, h.now()),
	})
}

// CreateDiscussion accepts the viewer's page state in the query, like ForumPage,
// and answers with the state that follows the creation.
func (h *Handler) CreateDiscussion(w http.ResponseWriter, r *http.Request) {
	identity := mw.GetIdentityFromContext(r)
	if identity == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	// The form was open when the viewer submitted it
	state, err := parseViewState(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	state = state.OpenForm()

	var body api.CreateDiscussionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	d, err := h.forum.CreateDiscussion(identity, body.Title, body.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/discussions/"+strconv.FormatInt(d.Id, 10))
	utils.WriteJSON(w, http.StatusCreated, api.CreateDiscussionResponse{Id: d.Id, State: state.AfterCreate(d)})
}

// GetDiscussion returns the whole discussion and counts the read as a view.
func (h *Handler) GetDiscussion(w http.ResponseWriter, r *http.Request) {
	id, err := discussionId(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	d, err := h.forum.ViewDiscussion(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewDiscussionResponse(d, h.now(), h.text, renderLabel))
}
