package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"spec-tracker/internal/core/domain"
)

type notesPayload struct {
	Notes  string `json:"notes"`
	Editor string `json:"editor"`
}

type notesEntryResponse struct {
	Notes    string    `json:"notes"`
	EditedBy string    `json:"edited_by"`
	EditedAt time.Time `json:"edited_at"`
}

func toNotesResponses(entries []domain.NotesEntry) []notesEntryResponse {
	out := make([]notesEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, notesEntryResponse{Notes: e.Notes, EditedBy: e.EditedBy, EditedAt: e.EditedAt})
	}
	return out
}

// handleRecordEdit saves new note text and appends a history entry. A
// blank editor is stored as the default sentinel.
func (h *Handler) handleRecordEdit(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	var payload notesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	if err := h.svc.RecordEdit(r.Context(), id, payload.Notes, payload.Editor); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLatestEdit returns the most recent notes edit. A campaign with no
// edits yet returns HTTP 204 rather than an error.
func (h *Handler) handleLatestEdit(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	entry, err := h.svc.LatestEdit(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if entry == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, notesEntryResponse{
		Notes: entry.Notes, EditedBy: entry.EditedBy, EditedAt: entry.EditedAt,
	})
}

// handleNotesHistory returns history entries most-recent-first. `limit`
// caps the result (default 5); `full=true` returns everything for callers
// that paginate themselves. No entries is an empty list, never an error.
func (h *Handler) handleNotesHistory(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}

	var entries []domain.NotesEntry
	if r.URL.Query().Get("full") == "true" {
		entries, err = h.svc.FullNotesHistory(r.Context(), id)
	} else {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
				return
			}
		}
		entries, err = h.svc.NotesHistory(r.Context(), id, limit)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toNotesResponses(entries))
}
