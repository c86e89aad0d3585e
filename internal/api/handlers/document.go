package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JothiRam-cm/elevix/internal/service"
)

type DocumentHandler struct {
	svc *service.IngestService
}

func NewDocumentHandler(svc *service.IngestService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

type ingestRequest struct {
	Passages []service.PassageInput `json:"passages"`
}

type ingestResponse struct {
	Indexed int `json:"indexed"`
}

// IngestPassages indexes pre-split document passages. Splitting is the
// caller's job; this endpoint embeds and stores what it receives.
func (h *DocumentHandler) IngestPassages(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Passages) == 0 {
		writeError(w, http.StatusBadRequest, "passages are required")
		return
	}

	indexed, err := h.svc.Ingest(r.Context(), req.Passages)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPassageContentEmpty),
			errors.Is(err, service.ErrPassageSourceEmpty):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to ingest passages")
		}
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{Indexed: indexed})
}

type deleteSourceResponse struct {
	Deleted int64 `json:"deleted"`
}

// DeleteSource removes every passage ingested from the given source file.
func (h *DocumentHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	sourceFile := r.URL.Query().Get("source_file")

	deleted, err := h.svc.RemoveSource(r.Context(), sourceFile)
	if err != nil {
		if errors.Is(err, service.ErrPassageSourceEmpty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete passages")
		return
	}

	writeJSON(w, http.StatusOK, deleteSourceResponse{Deleted: deleted})
}
