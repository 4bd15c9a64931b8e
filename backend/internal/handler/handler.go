package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/itchan-dev/forum/backend/internal/service"
	"github.com/itchan-dev/forum/shared/api"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/render"
	"github.com/itchan-dev/forum/shared/utils"
)

var renderLabel = render.RelativeLabel

type Handler struct {
	forum service.ForumService
	text  api.Renderer
	log   *slog.Logger
	now   func() time.Time
}

func New(forum service.ForumService, text api.Renderer, log *slog.Logger) *Handler {
	return &Handler{
		forum: forum,
		text:  text,
		log:   log.With("component", "handler"),
		now:   time.Now,
	}
}

// writeError logs internal failures and maps err to a status code.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is[*errors.ValidationError](err) && !errors.Is[*errors.NotFoundError](err) && !errors.Is[*errors.ErrorWithStatusCode](err) {
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	utils.WriteErrorAndStatusCode(w, err)
}

func (h *Handler) summaries(list []domain.Discussion, now time.Time) []api.DiscussionSummaryResponse {
	out := make([]api.DiscussionSummaryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, api.NewDiscussionSummary(d, now, renderLabel))
	}
	return out
}

// discussionId parses the {id} path parameter
func discussionId(r *http.Request) (domain.DiscussionId, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &errors.ErrorWithStatusCode{Message: fmt.Sprintf("invalid discussion id %q", raw), StatusCode: http.StatusBadRequest}
	}
	return id, nil
}
