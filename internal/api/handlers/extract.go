package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/studylens/extraction-api/internal/extract"
)

// Extractor is the orchestrator contract the handler depends on.
type Extractor interface {
	Extract(ctx context.Context, req extract.Request) (*extract.Outcome, error)
}

type ExtractHandler struct {
	store          *extract.Store
	extractor      Extractor
	maxUploadBytes int64
}

func NewExtractHandler(store *extract.Store, extractor Extractor, maxUploadBytes int64) *ExtractHandler {
	return &ExtractHandler{store: store, extractor: extractor, maxUploadBytes: maxUploadBytes}
}

type extractResponse struct {
	Success    bool           `json:"success"`
	Text       string         `json:"text"`
	Filename   string         `json:"filename"`
	ModuleID   string         `json:"moduleId"`
	TextLength int            `json:"textLength"`
	Method     extract.Method `json:"method"`
}

// Extract handles POST /ocr: multipart upload in, extracted text out.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form or file too large"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file exceeds size limit"})
		return
	}

	moduleID := r.FormValue("moduleId")

	path, err := h.store.SaveUpload(file, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "failed to store upload",
			"detail": err.Error(),
		})
		return
	}

	outcome, err := h.extractor.Extract(r.Context(), extract.Request{
		DocumentPath:     path,
		OriginalFilename: header.Filename,
		ModuleID:         moduleID,
	})
	if err != nil {
		if errors.Is(err, extract.ErrInsufficientContent) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error":  "text extraction failed",
				"detail": "document produced no usable text from either the text layer or OCR",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "text extraction failed",
			"detail": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Success:    true,
		Text:       outcome.Text,
		Filename:   header.Filename,
		ModuleID:   moduleID,
		TextLength: outcome.CharacterCount,
		Method:     outcome.Method,
	})
}
