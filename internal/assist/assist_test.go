package assist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylens/extraction-api/internal/config"
	"github.com/studylens/extraction-api/internal/llm"
)

type captureGateway struct {
	lastReq llm.ChatRequest
}

func (c *captureGateway) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	c.lastReq = req
	return &llm.ChatResponse{Provider: "openai", Model: req.Model, Content: "model output"}, nil
}

func (c *captureGateway) Provider(name string) (llm.Provider, error) { return nil, nil }

func TestExtractConceptsPrompt(t *testing.T) {
	gw := &captureGateway{}
	svc := NewService(gw, config.LLMConfig{DefaultModel: "gpt-4o-mini"})

	resp, err := svc.ExtractConcepts(context.Background(), "chapter about cell division")
	require.NoError(t, err)
	assert.Equal(t, "model output", resp.Content)

	require.Len(t, gw.lastReq.Messages, 2)
	assert.Equal(t, "system", gw.lastReq.Messages[0].Role)
	assert.Contains(t, gw.lastReq.Messages[0].Content, "key concepts")
	assert.Equal(t, "chapter about cell division", gw.lastReq.Messages[1].Content)
	assert.Equal(t, "gpt-4o-mini", gw.lastReq.Model)
}

func TestChatWithMaterial(t *testing.T) {
	gw := &captureGateway{}
	svc := NewService(gw, config.LLMConfig{DefaultModel: "gpt-4o-mini"})

	_, err := svc.Chat(context.Background(), "what is mitosis?", "mitosis is cell division")
	require.NoError(t, err)

	user := gw.lastReq.Messages[1].Content
	assert.Contains(t, user, "Course material:")
	assert.Contains(t, user, "mitosis is cell division")
	assert.Contains(t, user, "what is mitosis?")
}

func TestChatWithoutMaterial(t *testing.T) {
	gw := &captureGateway{}
	svc := NewService(gw, config.LLMConfig{DefaultModel: "gpt-4o-mini"})

	_, err := svc.Chat(context.Background(), "what is mitosis?", "")
	require.NoError(t, err)

	assert.Equal(t, "what is mitosis?", gw.lastReq.Messages[1].Content)
}
