// Package solver assembles model output into a displayable solution.
package solver

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/iterator"

	"mathexpert-backend/internal/models"
)

const (
	ErrorMarker   = "❌"
	WarningMarker = "⚠️"

	NoContentMessage     = ErrorMarker + " No response generated. Please try again."
	EmptyResponseMessage = ErrorMarker + " Empty response. The model might be overloaded. Please try again."

	IncompleteWarning = "\n\n" + WarningMarker + " **Note:** Response may be incomplete due to length limits. For very complex problems, try breaking them into smaller parts."
)

// completionMarkers are the closing sections every prompt asks for.
var completionMarkers = []string{"FINAL ANSWER", "REAL-WORLD", "APPLICATION", "حتمی جواب", "اطلاق"}

// ChunkFunc observes each text fragment as it is appended.
type ChunkFunc func(fragment string)

// AggregateStream drains src in order and returns the joined text.
// It never returns an error; failures come back as ErrorMarker sentinels.
func AggregateStream(src models.ChunkSource, onChunk ChunkFunc) (sol models.AggregatedSolution) {
	defer func() {
		if r := recover(); r != nil {
			sol = failure(fmt.Errorf("%v", r))
		}
	}()

	var b strings.Builder
	for {
		chunk, err := src.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return failure(err)
		}
		for _, fragment := range chunkText(chunk) {
			b.WriteString(fragment)
			if onChunk != nil {
				onChunk(fragment)
			}
		}
	}

	return finish(b.String(), NoContentMessage)
}

// AggregateResponse handles the non-streaming path.
func AggregateResponse(resp *models.ResponseChunk, err error) models.AggregatedSolution {
	if err != nil {
		return failure(err)
	}
	return finish(strings.Join(chunkText(resp), ""), EmptyResponseMessage)
}

// IsSentinel reports whether text is an error or warning sentinel rather than a solution.
func IsSentinel(text string) bool {
	return strings.HasPrefix(text, ErrorMarker) || strings.HasPrefix(text, WarningMarker)
}

// LooksComplete reports whether text contains one of the closing section markers.
func LooksComplete(text string) bool {
	upper := strings.ToUpper(text)
	for _, marker := range completionMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

func chunkText(chunk *models.ResponseChunk) []string {
	if chunk == nil {
		return nil
	}
	if chunk.Text != "" {
		return []string{chunk.Text}
	}
	var out []string
	for _, part := range chunk.Parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func finish(text, emptyMessage string) models.AggregatedSolution {
	if strings.TrimSpace(text) == "" {
		return models.AggregatedSolution{Text: emptyMessage, Failed: true}
	}
	if LooksComplete(text) {
		return models.AggregatedSolution{Text: text, Complete: true}
	}
	if !strings.HasSuffix(text, IncompleteWarning) {
		text += IncompleteWarning
	}
	return models.AggregatedSolution{Text: text}
}

func failure(err error) models.AggregatedSolution {
	return models.AggregatedSolution{
		Text:   fmt.Sprintf("%s Error: %s", ErrorMarker, err.Error()),
		Failed: true,
	}
}
