package httpadapter

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"spec-tracker/internal/core/port"
)

// maxSpecUploadBytes caps multipart parsing. Posting-instruction PDFs are
// small documents.
const maxSpecUploadBytes = 32 << 20

type specVersionResponse struct {
	Version    int       `json:"version"`
	Filename   string    `json:"filename"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// handleUploadSpec accepts a multipart form with a `file` field holding
// the PDF and an optional `uploader` field. On success it returns the
// generated filename and the new version is visible in the version log.
func (h *Handler) handleUploadSpec(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	if err := r.ParseMultipartForm(maxSpecUploadBytes); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	filename, err := h.svc.UploadSpec(r.Context(), port.UploadRequest{
		CampaignID:   id,
		Content:      content,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Uploader:     r.FormValue("uploader"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"filename": filename})
}

// handleListSpecVersions returns the campaign's upload log, newest
// version first.
func (h *Handler) handleListSpecVersions(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	versions, err := h.svc.ListSpecVersions(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]specVersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, specVersionResponse{
			Version: v.Version, Filename: v.Filename,
			UploadedBy: v.UploadedBy, UploadedAt: v.UploadedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// handleNextSpecVersion previews the version number the next upload will
// receive. Advisory only; the upload itself recomputes it.
func (h *Handler) handleNextSpecVersion(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	next, err := h.svc.NextSpecVersion(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"next_version": next})
}

// handleInvalidateCache drops all cached reads. The UI calls this after
// out-of-band changes (e.g. files fixed up on disk).
func (h *Handler) handleInvalidateCache(w http.ResponseWriter, _ *http.Request) {
	h.svc.InvalidateCache()
	w.WriteHeader(http.StatusNoContent)
}

// handleDownloadSpec streams a stored spec file. A filename that cannot
// be resolved in either the campaign directory or the legacy directory is
// a warning and a 404, not a server error.
func (h *Handler) handleDownloadSpec(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	filename := chi.URLParam(r, "filename")

	path, ok := h.svc.ResolveSpecFile(r.Context(), id, filename)
	if !ok {
		h.logger.Warn("spec file not found on disk",
			slog.Int64("campaign_id", id), slog.String("filename", filename))
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "spec file not found"})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}
