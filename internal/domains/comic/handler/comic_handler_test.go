package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicvault-backend/internal/domains/comic/model"
	"comicvault-backend/internal/domains/comic/service"
)

type stubBarcode struct {
	result *model.ScanResult
	found  bool
	calls  int
}

func (s *stubBarcode) Scan(_ context.Context, _ []byte, _ string) (*model.ScanResult, bool) {
	s.calls++
	return s.result, s.found
}

type stubMetadata struct {
	issue *model.MetronIssue
	err   error
	calls int
}

func (s *stubMetadata) SearchByUPC(_ context.Context, _ string) (*model.MetronIssue, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.issue, nil
}

func newTestRouter(barcode *stubBarcode, metadata *stubMetadata) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(service.NewService(barcode, metadata, nil))

	router := gin.New()
	router.GET("/api/comics", h.SearchComics)
	router.POST("/api/upload", h.UploadScanImage)
	return router
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, router *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSearchComics_Success(t *testing.T) {
	metadata := &stubMetadata{issue: &model.MetronIssue{
		Series: model.MetronSeries{Name: "Saga", YearBegan: "2012"},
		Number: "54",
		Issue:  "Saga #54",
	}}
	router := newTestRouter(&stubBarcode{}, metadata)

	req := httptest.NewRequest(http.MethodGet, "/api/comics?search=03678550016700111", nil)
	w, body := doRequest(t, router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)

	var comic model.Comic
	require.NoError(t, json.Unmarshal(body.Data, &comic))
	assert.Equal(t, "Saga", comic.SeriesName)
	assert.Equal(t, "03678550016700111", comic.UPC)
}

func TestSearchComics_InvalidUPCRejectedBeforeLookup(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"missing", "", "UPC is required"},
		{"non-digit", "12a45678901234567", "UPC must contain only digits"},
		{"wrong length", "123", "UPC must be 17 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata := &stubMetadata{}
			router := newTestRouter(&stubBarcode{}, metadata)

			req := httptest.NewRequest(http.MethodGet, "/api/comics?search="+tt.query, nil)
			w, body := doRequest(t, router, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, "INVALID_UPC", body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
			// Không có provider call nào khi validation fail
			assert.Zero(t, metadata.calls)
		})
	}
}

func TestSearchComics_NotFound(t *testing.T) {
	router := newTestRouter(&stubBarcode{}, &stubMetadata{err: model.ErrIssueNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/comics?search=03678550016700111", nil)
	w, body := doRequest(t, router, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestSearchComics_LookupTimeout(t *testing.T) {
	router := newTestRouter(&stubBarcode{}, &stubMetadata{err: model.ErrLookupTimeout})

	req := httptest.NewRequest(http.MethodGet, "/api/comics?search=03678550016700111", nil)
	w, body := doRequest(t, router, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "LOOKUP_TIMEOUT", body.Error.Code)
}

func multipartImage(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadScanImage_Success(t *testing.T) {
	barcode := &stubBarcode{
		result: &model.ScanResult{UPC: "036785500167"},
		found:  true,
	}
	metadata := &stubMetadata{issue: &model.MetronIssue{Number: "54"}}
	router := newTestRouter(barcode, metadata)

	body, contentType := multipartImage(t, "image", "cover.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	w, resp := doRequest(t, router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	var comic model.Comic
	require.NoError(t, json.Unmarshal(resp.Data, &comic))
	assert.Equal(t, "03678550016700111", comic.UPC)
}

func TestUploadScanImage_MissingFile(t *testing.T) {
	router := newTestRouter(&stubBarcode{}, &stubMetadata{})

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	w, body := doRequest(t, router, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "MISSING_IMAGE", body.Error.Code)
}

func TestUploadScanImage_NoBarcode(t *testing.T) {
	barcode := &stubBarcode{found: false}
	metadata := &stubMetadata{}
	router := newTestRouter(barcode, metadata)

	body, contentType := multipartImage(t, "image", "cover.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	w, resp := doRequest(t, router, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BARCODE_NOT_FOUND", resp.Error.Code)
	assert.Zero(t, metadata.calls)
}
