package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"spec-tracker/internal/adapter/usecase"
	"spec-tracker/internal/cache"
	"spec-tracker/internal/core/domain"
	"spec-tracker/internal/core/port"
	"spec-tracker/internal/core/port/mocks"
)

// newTestHandler wires the real service over mocked outbound ports, so
// requests exercise routing, decoding and the error mapping end to end.
func newTestHandler(t *testing.T) (*Handler, *mocks.CampaignRepository, *mocks.FileStore) {
	t.Helper()
	repo := &mocks.CampaignRepository{}
	files := &mocks.FileStore{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svc := usecase.NewCampaignService(repo, files, cache.New(), logger, time.Second, time.Second)
	return NewHandler(svc, logger), repo, files
}

func doJSON(t *testing.T, h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestCreateCampaignReturnsID(t *testing.T) {
	h, repo, _ := newTestHandler(t)
	repo.On("CreateCampaign", mock.Anything, mock.Anything).Return(int64(42), nil).Once()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/campaigns", map[string]string{
		"name": "Acme", "client": "Acme Corp", "status": "Active",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(42), resp["id"])
}

func TestCreateCampaignValidationIs400(t *testing.T) {
	h, _, _ := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/v1/campaigns", map[string]string{"client": "Acme Corp"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "name is required")
}

func TestListCampaignsWithSearchQuery(t *testing.T) {
	h, repo, _ := newTestHandler(t)
	repo.On("ListCampaigns", mock.Anything).Return([]domain.Campaign{
		{ID: 1, Name: "Acme", Client: "Acme Corp", Status: domain.StatusActive},
		{ID: 2, Name: "Globex", Client: "Globex", Status: domain.StatusPending},
	}, nil).Once()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/campaigns?q=globex", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []campaignResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "Globex", got[0].Name)
}

func TestUpdateCampaignNotFoundIs404(t *testing.T) {
	h, repo, _ := newTestHandler(t)
	repo.On("UpdateCampaign", mock.Anything, int64(9), mock.Anything).
		Return(fmt.Errorf("%w: id 9", port.ErrNotFound)).Once()

	rec := doJSON(t, h, http.MethodPut, "/api/v1/campaigns/9", map[string]string{
		"name": "X", "client": "Y", "status": "Active",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordEditReturns204(t *testing.T) {
	h, repo, _ := newTestHandler(t)
	repo.On("SaveNotes", mock.Anything, int64(3), "hello", "user").Return(nil).Once()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/campaigns/3/notes", map[string]string{
		"notes": "hello", "editor": "",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestLatestEditEmptyIs204(t *testing.T) {
	h, repo, _ := newTestHandler(t)
	repo.On("LatestEdit", mock.Anything, int64(3)).Return(nil, nil).Once()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/campaigns/3/notes/latest", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUploadSpecMultipart(t *testing.T) {
	h, repo, files := newTestHandler(t)

	camp := &domain.Campaign{ID: 5, Name: "Acme", Client: "Acme Corp", Status: domain.StatusActive}
	repo.On("GetCampaign", mock.Anything, int64(5)).Return(camp, nil).Once()
	files.On("EnsureDir", int64(5)).Return(nil).Once()
	repo.On("NextSpecVersion", mock.Anything, int64(5)).Return(1, nil).Once()
	files.On("Exists", int64(5), mock.Anything).Return(false).Once()
	files.On("Save", int64(5), mock.Anything, []byte("%PDF-1.4 body")).Return(nil).Once()
	repo.On("InsertSpecVersion", mock.Anything, mock.MatchedBy(func(v domain.SpecVersion) bool {
		return v.Version == 1 && v.UploadedBy == "alice" && strings.HasSuffix(v.Filename, ".pdf")
	})).Return(nil).Once()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="original.pdf"`)
	hdr.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 body"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("uploader", "alice"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/5/spec", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp["filename"], "Posting Instructions v1_")
	repo.AssertExpectations(t)
	files.AssertExpectations(t)
}

func TestUploadSpecRejectsNonPDFUpload(t *testing.T) {
	h, _, _ := newTestHandler(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="notes.txt"`)
	hdr.Set("Content-Type", "text/plain")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/5/spec", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadSpecServesResolvedFile(t *testing.T) {
	h, _, files := newTestHandler(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "spec.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF data"), 0o644))
	files.On("Resolve", int64(7), "spec.pdf").Return(path, true).Once()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/campaigns/7/spec/spec.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "%PDF data", rec.Body.String())
}

func TestNextSpecVersionEndpoint(t *testing.T) {
	h, repo, _ := newTestHandler(t)
	repo.On("NextSpecVersion", mock.Anything, int64(4)).Return(3, nil).Once()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/campaigns/4/spec/next-version", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 3, resp["next_version"])
}

func TestInvalidateCacheEndpoint(t *testing.T) {
	h, repo, _ := newTestHandler(t)
	repo.On("ListCampaigns", mock.Anything).Return([]domain.Campaign{}, nil).Twice()

	// prime the cache, invalidate, then the next read must hit the repo again
	doJSON(t, h, http.MethodGet, "/api/v1/campaigns", nil)
	rec := doJSON(t, h, http.MethodPost, "/api/v1/cache/invalidate", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	doJSON(t, h, http.MethodGet, "/api/v1/campaigns", nil)

	repo.AssertExpectations(t)
}

func TestDownloadSpecMissingFileIs404(t *testing.T) {
	h, _, files := newTestHandler(t)
	files.On("Resolve", int64(7), "gone.pdf").Return("", false).Once()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/campaigns/7/spec/gone.pdf", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
