package handler

import (
	"net/http"

	"github.com/vitormoschetta/captionai/internal/apperr"
	"github.com/vitormoschetta/captionai/internal/logger"
	"github.com/vitormoschetta/captionai/internal/model"
	"github.com/vitormoschetta/captionai/internal/respond"
	"github.com/vitormoschetta/captionai/internal/server"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	server *server.Server
}

// NewHandler creates a Handler for srv.
func NewHandler(srv *server.Server) *Handler {
	return &Handler{
		server: srv,
	}
}

// HandleHealth reports that the process is serving.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.FromContext(r.Context()).Error("failed to write response", "error", err)
	}
}

// HandleCaption validates the request, generates one caption and returns it.
func (h *Handler) HandleCaption(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	req, err := decodeCaptionRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	caption, err := h.server.CaptionService.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, model.CaptionResponse{Caption: caption})
}

func writeError(w http.ResponseWriter, err error) {
	status, message := apperr.Public(err, model.MsgUnexpected)
	respond.Error(w, status, message)
}
