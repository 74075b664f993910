package models

import "time"

// Language selects one of the fixed prompt profiles.
type Language string

const (
	LanguageEnglish   Language = "English"
	LanguageUrdu      Language = "Urdu"
	LanguageRomanUrdu Language = "Roman Urdu"
)

// Languages lists the supported languages in display order.
var Languages = []Language{LanguageEnglish, LanguageUrdu, LanguageRomanUrdu}

func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

// GenerationOptions configures a single call to the model.
type GenerationOptions struct {
	MaxOutputTokens int32   `json:"max_output_tokens"`
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"top_p"`
	Streaming       bool    `json:"streaming"`
}

// ResponseChunk is one unit of generated text. Text takes precedence over Parts.
type ResponseChunk struct {
	Text  string
	Parts []string
}

// ChunkSource yields chunks in delivery order. Next returns iterator.Done
// once the source is exhausted.
type ChunkSource interface {
	Next() (*ResponseChunk, error)
}

// AggregatedSolution is the complete text assembled from a model response.
type AggregatedSolution struct {
	Text     string `json:"text"`
	Complete bool   `json:"complete"`
	Failed   bool   `json:"failed"`
}

type SolveRequest struct {
	Question  string   `json:"question"`
	Language  Language `json:"language"`
	Streaming *bool    `json:"streaming"`
	APIKey    string   `json:"api_key"`
}

type SolveResponse struct {
	Solution          string    `json:"solution"`
	Formatted         string    `json:"formatted"`
	Complete          bool      `json:"complete"`
	Failed            bool      `json:"failed"`
	DownloadAvailable bool      `json:"download_available"`
	SolvedAt          time.Time `json:"solved_at"`
}

// KeyStatus classifies the outcome of a credential probe.
type KeyStatus string

const (
	KeyValid         KeyStatus = "valid"
	KeyMissing       KeyStatus = "missing"
	KeyTooShort      KeyStatus = "too_short"
	KeyInvalid       KeyStatus = "invalid"
	KeyQuotaExceeded KeyStatus = "quota_exceeded"
	KeyError         KeyStatus = "error"
)

type VerifyKeyRequest struct {
	APIKey string `json:"api_key"`
}

type VerifyKeyResponse struct {
	Status  KeyStatus `json:"status"`
	Valid   bool      `json:"valid"`
	Message string    `json:"message"`
}

// Example is a canned question offered as a quick-start button.
type Example struct {
	Label    string `json:"label"`
	Hint     string `json:"hint"`
	Question string `json:"question"`
}

var Examples = []Example{
	{Label: "3x + 5 = 17", Hint: "Solve linear equation", Question: "Solve 3x + 5 = 17"},
	{Label: "Circle Area r=7", Hint: "Calculate area", Question: "Find the area of a circle with radius 7"},
	{Label: "Eigenvalues", Hint: "Matrix eigenvalues", Question: "Find the eigenvalues of matrix [[2,1],[1,2]]"},
	{Label: "√2 Proof", Hint: "Irrationality proof", Question: "Prove that √2 is irrational"},
	{Label: "CL Theorem", Hint: "Central Limit Theorem", Question: "Explain the Central Limit Theorem with proof"},
	{Label: "Wave Eq", Hint: "Wave equation", Question: "Solve the wave equation: ∂²u/∂t² = c²∂²u/∂x²"},
}
