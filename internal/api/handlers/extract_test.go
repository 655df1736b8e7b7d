package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylens/extraction-api/internal/extract"
)

type fakeExtractor struct {
	outcome *extract.Outcome
	err     error
	lastReq extract.Request
}

func (f *fakeExtractor) Extract(ctx context.Context, req extract.Request) (*extract.Outcome, error) {
	f.lastReq = req
	// The real orchestrator owns the upload; mimic its cleanup contract.
	os.Remove(req.DocumentPath)
	return f.outcome, f.err
}

func multipartBody(t *testing.T, fields map[string]string, fileField, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func newExtractHandler(t *testing.T, fake *fakeExtractor, maxBytes int64) *ExtractHandler {
	t.Helper()
	return NewExtractHandler(extract.NewStore(t.TempDir()), fake, maxBytes)
}

func TestExtractHandlerSuccess(t *testing.T) {
	fake := &fakeExtractor{outcome: &extract.Outcome{
		Text:           "the extracted study material",
		Method:         extract.MethodStructural,
		CharacterCount: 28,
	}}
	h := newExtractHandler(t, fake, 50<<20)

	body, contentType := multipartBody(t, map[string]string{"moduleId": "bio-101"}, "file", "lecture.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/ocr", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Extract(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success    bool   `json:"success"`
		Text       string `json:"text"`
		Filename   string `json:"filename"`
		ModuleID   string `json:"moduleId"`
		TextLength int    `json:"textLength"`
		Method     string `json:"method"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "the extracted study material", resp.Text)
	assert.Equal(t, "lecture.pdf", resp.Filename)
	assert.Equal(t, "bio-101", resp.ModuleID)
	assert.Equal(t, 28, resp.TextLength)
	assert.Equal(t, "structural", resp.Method)

	assert.Equal(t, "lecture.pdf", fake.lastReq.OriginalFilename)
	assert.Equal(t, "bio-101", fake.lastReq.ModuleID)
	assert.NotEmpty(t, fake.lastReq.DocumentPath)
}

func TestExtractHandlerMissingFile(t *testing.T) {
	h := newExtractHandler(t, &fakeExtractor{}, 50<<20)

	body, contentType := multipartBody(t, map[string]string{"moduleId": "bio-101"}, "", "", "")
	req := httptest.NewRequest(http.MethodPost, "/ocr", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Extract(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file required")
}

func TestExtractHandlerOversizeUpload(t *testing.T) {
	h := newExtractHandler(t, &fakeExtractor{}, 64)

	body, contentType := multipartBody(t, nil, "file", "big.pdf", strings.Repeat("x", 4096))
	req := httptest.NewRequest(http.MethodPost, "/ocr", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Extract(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractHandlerInsufficientContent(t *testing.T) {
	fake := &fakeExtractor{err: fmt.Errorf("validate: %w", extract.ErrInsufficientContent)}
	h := newExtractHandler(t, fake, 50<<20)

	body, contentType := multipartBody(t, nil, "file", "scan.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/ocr", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Extract(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "text extraction failed", resp["error"])
	assert.Contains(t, resp["detail"], "no usable text")
}

func TestExtractHandlerPipelineError(t *testing.T) {
	fake := &fakeExtractor{err: fmt.Errorf("render pages: corrupt document")}
	h := newExtractHandler(t, fake, 50<<20)

	body, contentType := multipartBody(t, nil, "file", "scan.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/ocr", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Extract(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "text extraction failed", resp["error"])
	assert.Contains(t, resp["detail"], "corrupt document")
}
