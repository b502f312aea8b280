package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/horseclub-web/internal/http/response"
)

// Sessions считает живые сессии.
type Sessions interface {
	Len() int
}

type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	}))
}
