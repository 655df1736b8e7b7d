// Package assist holds the AI helper features layered on top of extraction:
// key-concept listing and a study chat assistant. Both are thin prompts over
// the LLM gateway; all extraction-core logic lives in internal/extract.
package assist

import (
	"context"
	"fmt"

	"github.com/studylens/extraction-api/internal/config"
	"github.com/studylens/extraction-api/internal/llm"
)

const conceptsSystemPrompt = "You are a study assistant. Given course material, " +
	"list the key concepts it covers, one per line, most important first. " +
	"Respond with the concept list only."

const chatSystemPrompt = "You are a helpful study assistant. Answer the " +
	"student's question clearly and concisely. When course material is " +
	"provided, ground your answer in it."

type Service struct {
	gateway llm.Gateway
	model   string
}

func NewService(gateway llm.Gateway, cfg config.LLMConfig) *Service {
	return &Service{gateway: gateway, model: cfg.DefaultModel}
}

// ExtractConcepts asks the model for the key concepts in the given text.
func (s *Service) ExtractConcepts(ctx context.Context, text string) (*llm.ChatResponse, error) {
	return s.gateway.Chat(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: conceptsSystemPrompt},
			{Role: "user", Content: text},
		},
	})
}

// Chat answers a student message, optionally grounded in course material.
func (s *Service) Chat(ctx context.Context, message, material string) (*llm.ChatResponse, error) {
	userContent := message
	if material != "" {
		userContent = fmt.Sprintf("Course material:\n%s\n\nQuestion: %s", material, message)
	}
	return s.gateway.Chat(ctx, llm.ChatRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: userContent},
		},
	})
}
