package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/studylens/extraction-api/internal/llm"
)

// Assistant is the AI helper contract the handler depends on.
type Assistant interface {
	ExtractConcepts(ctx context.Context, text string) (*llm.ChatResponse, error)
	Chat(ctx context.Context, message, material string) (*llm.ChatResponse, error)
}

type AssistHandler struct {
	svc Assistant
}

func NewAssistHandler(svc Assistant) *AssistHandler {
	return &AssistHandler{svc: svc}
}

func (h *AssistHandler) Concepts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text required"})
		return
	}

	resp, err := h.svc.ExtractConcepts(r.Context(), req.Text)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"concepts": resp.Content,
		"provider": resp.Provider,
		"model":    resp.Model,
	})
}

func (h *AssistHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message  string `json:"message"`
		Material string `json:"context,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message required"})
		return
	}

	resp, err := h.svc.Chat(r.Context(), req.Message, req.Material)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"reply":    resp.Content,
		"provider": resp.Provider,
		"model":    resp.Model,
	})
}
