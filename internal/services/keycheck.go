package services

import (
	"context"

	"mathexpert-backend/internal/models"
	"mathexpert-backend/internal/solver"
)

const probePrompt = "Say 'API test successful' in one word."

// VerifyKey makes a tiny live call to find out whether apiKey works.
func VerifyKey(ctx context.Context, dialer Dialer, apiKey string) models.VerifyKeyResponse {
	if status, msg, ok := solver.CheckKeyShape(apiKey); !ok {
		return models.VerifyKeyResponse{Status: status, Message: msg}
	}

	gen, err := dialer.Dial(ctx, apiKey)
	if err != nil {
		status, msg := solver.ClassifyKeyError(err)
		return models.VerifyKeyResponse{Status: status, Message: msg}
	}
	defer gen.Close()

	_, err = gen.Generate(ctx, probePrompt, models.GenerationOptions{
		MaxOutputTokens: 10,
		Temperature:     0.1,
	})
	status, msg := solver.ClassifyKeyError(err)
	return models.VerifyKeyResponse{Status: status, Valid: status == models.KeyValid, Message: msg}
}
