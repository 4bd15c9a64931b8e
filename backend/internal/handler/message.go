package handler

import (
	"net/http"

	"github.com/itchan-dev/forum/shared/api"
	mw "github.com/itchan-dev/forum/shared/middleware"
	"github.com/itchan-dev/forum/shared/utils"
)

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	identity := mw.GetIdentityFromContext(r)
	if identity == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	id, err := discussionId(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var body api.CreateMessageRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		h.writeError(w, r, err)
		return
	}

	msg, err := h.forum.AppendReply(identity, id, body.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreateMessageResponse{Id: msg.Id, DiscussionId: id})
}
