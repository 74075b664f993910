package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"mathexpert-backend/internal/models"
)

const DefaultModel = "gemini-2.0-flash"

// Generator is a model bound to one credential.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts models.GenerationOptions) (*models.ResponseChunk, error)
	GenerateStream(ctx context.Context, prompt string, opts models.GenerationOptions) models.ChunkSource
	Close() error
}

// Dialer opens a Generator for a caller-supplied API key.
type Dialer interface {
	Dial(ctx context.Context, apiKey string) (Generator, error)
}

type GeminiService struct {
	modelName string
}

func NewGeminiService(modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &GeminiService{modelName: modelName}
}

func (s *GeminiService) Dial(ctx context.Context, apiKey string) (Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiGenerator{client: client, modelName: s.modelName}, nil
}

type geminiGenerator struct {
	client    *genai.Client
	modelName string
}

func (g *geminiGenerator) model(opts models.GenerationOptions) *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.modelName)
	if opts.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxOutputTokens)
	}
	model.SetTemperature(opts.Temperature)
	// top_p is only sent on the streaming path
	if opts.Streaming && opts.TopP > 0 {
		model.SetTopP(opts.TopP)
	}
	return model
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string, opts models.GenerationOptions) (*models.ResponseChunk, error) {
	resp, err := g.model(opts).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}
	return toChunk(resp), nil
}

func (g *geminiGenerator) GenerateStream(ctx context.Context, prompt string, opts models.GenerationOptions) models.ChunkSource {
	opts.Streaming = true
	return &streamSource{iter: g.model(opts).GenerateContentStream(ctx, genai.Text(prompt))}
}

func (g *geminiGenerator) Close() error {
	return g.client.Close()
}

// streamSource adapts the SDK iterator; iterator.Done passes through untouched.
type streamSource struct {
	iter *genai.GenerateContentResponseIterator
}

func (s *streamSource) Next() (*models.ResponseChunk, error) {
	resp, err := s.iter.Next()
	if err != nil {
		return nil, err
	}
	return toChunk(resp), nil
}

// toChunk collects the text parts of every candidate in order.
func toChunk(resp *genai.GenerateContentResponse) *models.ResponseChunk {
	chunk := &models.ResponseChunk{}
	if resp == nil {
		return chunk
	}
	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonUnspecified && cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				chunk.Parts = append(chunk.Parts, string(t))
			}
		}
	}
	return chunk
}
