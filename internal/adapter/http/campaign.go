package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"spec-tracker/internal/core/domain"
	"spec-tracker/internal/core/port"
)

// campaignPayload is the JSON body accepted by create and update.
type campaignPayload struct {
	Name         string   `json:"name"`
	Client       string   `json:"client"`
	Status       string   `json:"status"`
	PaymentModel string   `json:"payment_model"`
	CPA          *float64 `json:"cpa"`
	SpecURL      string   `json:"spec_url"`
	Notes        string   `json:"notes"`
}

func (p campaignPayload) toRequest() port.CampaignRequest {
	return port.CampaignRequest{
		Name:         p.Name,
		Client:       p.Client,
		Status:       p.Status,
		PaymentModel: p.PaymentModel,
		CPA:          p.CPA,
		SpecURL:      p.SpecURL,
		Notes:        p.Notes,
	}
}

// campaignResponse is the JSON shape of a campaign record.
type campaignResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Client       string    `json:"client"`
	Status       string    `json:"status"`
	PaymentModel string    `json:"payment_model,omitempty"`
	CPA          *float64  `json:"cpa,omitempty"`
	PDFFilename  string    `json:"pdf_filename,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	SpecURL      string    `json:"spec_url,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
}

func toCampaignResponse(c domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:           c.ID,
		Name:         c.Name,
		Client:       c.Client,
		Status:       c.Status,
		PaymentModel: c.PaymentModel,
		CPA:          c.CPA,
		PDFFilename:  c.PDFFilename,
		Notes:        c.Notes,
		SpecURL:      c.SpecURL,
		LastUpdated:  c.LastUpdated,
	}
}

// handleCreateCampaign inserts a new campaign. Parsing errors produce
// HTTP 400; validation failures map through the error taxonomy.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var payload campaignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	id, err := h.svc.CreateCampaign(r.Context(), payload.toRequest())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// handleListCampaigns returns all campaigns ordered by name. An optional
// `q` query parameter filters by a case-insensitive substring match over
// name, client, status and notes.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	var (
		campaigns []domain.Campaign
		err       error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		campaigns, err = h.svc.SearchCampaigns(r.Context(), q)
	} else {
		campaigns, err = h.svc.ListCampaigns(r.Context())
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]campaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, toCampaignResponse(c))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// handleUpdateCampaign applies a full-record update of the editable fields.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	var payload campaignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	if err := h.svc.UpdateCampaign(r.Context(), id, payload.toRequest()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteCampaign removes the campaign together with its notes
// history and spec versions.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	if err := h.svc.DeleteCampaign(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
