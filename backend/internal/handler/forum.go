package handler

import (
	"net/http"
	"strconv"

	"github.com/itchan-dev/forum/shared/api"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	mw "github.com/itchan-dev/forum/shared/middleware"
	"github.com/itchan-dev/forum/shared/utils"
)

// ForumPage serves the whole page for the view state carried in the query:
// ?filter=popular&selected=3&form=1
func (h *Handler) ForumPage(w http.ResponseWriter, r *http.Request) {
	state, err := parseViewState(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.forum.Page(mw.GetIdentityFromContext(r), state)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	now := h.now()
	resp := api.ForumPageResponse{
		State:       page.State,
		Discussions: h.summaries(page.Discussions, now),
	}
	if page.Selected != nil {
		selected := api.NewDiscussionResponse(*page.Selected, now, h.text, renderLabel)
		resp.Selected = &selected
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func parseViewState(r *http.Request) (domain.ViewState, error) {
	q := r.URL.Query()

	filter, err := domain.ParseFilter(q.Get("filter"))
	if err != nil {
		return domain.ViewState{}, err
	}
	state := domain.ViewState{}.WithFilter(filter)

	if raw := q.Get("selected"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.ViewState{}, &errors.ValidationError{Field: "selected", Message: "must be a discussion id"}
		}
		state = state.Select(id)
	}

	if form, _ := strconv.ParseBool(q.Get("form")); form {
		state = state.OpenForm()
	}
	return state, nil
}
