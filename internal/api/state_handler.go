package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	app_errors "resumeqa/web/internal/errors"
	"resumeqa/web/internal/format"
	"resumeqa/web/internal/interfaces"
)

// StateHandler serves the JSON API used by the page's loading indicator and
// by the formatter preview.
type StateHandler struct {
	registry interfaces.ShellRegistry
}

func NewStateHandler(registry interfaces.ShellRegistry) *StateHandler {
	return &StateHandler{registry: registry}
}

// HandleGetState godoc
// @Summary      Get client state
// @Description  Returns a snapshot of the calling browser's shell: authentication, active session, transcript, upload selection, history view and in-flight status. Pending notices are not consumed.
// @Tags         State
// @Produce      json
// @Success      200  {object}  service.State
// @Router       /v1/state [get]
func (h *StateHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	shell := h.registry.Shell(r.Context(), ClientIDFromContext(r.Context()))
	respondWithJSON(w, http.StatusOK, shell.Snapshot())
}

// HandleFormat godoc
// @Summary      Format assistant text
// @Description  Renders text in the assistant markdown subset to the HTML fragment shown in the chat view.
// @Tags         Format
// @Accept       json
// @Produce      json
// @Param        formatRequest  body      FormatRequest  true  "Text to format"
// @Success      200            {object}  FormatResponse
// @Failure      400            {object}  ErrorResponse
// @Router       /v1/format [post]
func (h *StateHandler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, FormatResponse{HTML: format.HTML(req.Text)})
}
