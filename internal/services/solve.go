package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"mathexpert-backend/internal/models"
	"mathexpert-backend/internal/prompts"
	"mathexpert-backend/internal/session"
	"mathexpert-backend/internal/solver"
)

// Publisher pushes progress messages to the session's live feed.
type Publisher interface {
	Publish(ctx context.Context, sessionID uuid.UUID, msg models.WSMessage)
}

type SolveService struct {
	dialer     Dialer
	publisher  Publisher
	options    models.GenerationOptions
	timeout    time.Duration
	defaultKey string
}

func NewSolveService(dialer Dialer, publisher Publisher, options models.GenerationOptions, timeout time.Duration, defaultKey string) *SolveService {
	return &SolveService{
		dialer:     dialer,
		publisher:  publisher,
		options:    options,
		timeout:    timeout,
		defaultKey: defaultKey,
	}
}

// VerifyKey probes apiKey, falling back to the server key when it is empty.
func (s *SolveService) VerifyKey(ctx context.Context, apiKey string) models.VerifyKeyResponse {
	return VerifyKey(ctx, s.dialer, s.keyFor(apiKey))
}

func (s *SolveService) keyFor(apiKey string) string {
	if k := strings.TrimSpace(apiKey); k != "" {
		return k
	}
	return s.defaultKey
}

// Solve answers req and returns the session state that results from it.
// Only input problems come back as errors; generation failures are carried
// in the solution text as sentinels.
func (s *SolveService) Solve(ctx context.Context, st session.State, req models.SolveRequest) (session.State, *models.SolveResponse, error) {
	lang := req.Language
	if lang == "" {
		lang = st.Language
	}
	streaming := st.Streaming
	if req.Streaming != nil {
		streaming = *req.Streaming
	}

	st.Question = req.Question
	st.Language = lang
	st.Streaming = streaming

	apiKey := s.keyFor(req.APIKey)
	if status, msg, ok := solver.CheckKeyShape(apiKey); !ok {
		return st, nil, &CredentialError{Status: status, Message: msg}
	}
	if !lang.Valid() {
		return st, nil, &ValidationError{Fields: map[string]string{"language": "Unsupported language"}}
	}
	if msg := solver.ValidateQuestion(req.Question); msg != "" {
		return st, nil, &ValidationError{Fields: map[string]string{"question": msg}}
	}

	prompt, err := prompts.Build(lang, req.Question)
	if err != nil {
		return st, nil, &ValidationError{Fields: map[string]string{"language": err.Error()}}
	}

	// The final event must still go out when the timeout is what ended generation.
	done := context.WithoutCancel(ctx)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.status(ctx, st.ID, 1, "Initializing advanced math engine")
	sol := s.generate(ctx, st.ID, apiKey, prompt, streaming)

	now := time.Now().UTC()
	st.SolutionGenerated = true
	st.Solution = sol.Text
	st.SolutionFailed = sol.Failed
	st.SolvedAt = &now

	if sol.Failed {
		log.Printf("Solve %s failed: %s", st.ID, sol.Text)
		s.publisher.Publish(done, st.ID, models.WSMessage{
			Type: "error",
			Payload: models.ErrorEvent{
				SessionID: st.ID, ErrorCode: "AI_ERROR", ErrorMessage: sol.Text,
			},
		})
	} else {
		s.publisher.Publish(done, st.ID, models.WSMessage{
			Type: "completed",
			Payload: models.CompletedEvent{
				SessionID: st.ID, Complete: sol.Complete, SolvedAt: now,
			},
		})
	}

	return st, &models.SolveResponse{
		Solution:          sol.Text,
		Formatted:         solver.Format(sol.Text),
		Complete:          sol.Complete,
		Failed:            sol.Failed,
		DownloadAvailable: st.Downloadable(),
		SolvedAt:          now,
	}, nil
}

func (s *SolveService) generate(ctx context.Context, sessionID uuid.UUID, apiKey, prompt string, streaming bool) models.AggregatedSolution {
	gen, err := s.dialer.Dial(ctx, apiKey)
	if err != nil {
		return solver.AggregateResponse(nil, err)
	}
	defer gen.Close()

	opts := s.options
	opts.Streaming = streaming

	s.status(ctx, sessionID, 2, "Streaming complete solution")

	if !streaming {
		return solver.AggregateResponse(gen.Generate(ctx, prompt, opts))
	}

	sent := 0
	return solver.AggregateStream(gen.GenerateStream(ctx, prompt, opts), func(fragment string) {
		sent++
		s.publisher.Publish(ctx, sessionID, models.WSMessage{
			Type: "partial_content",
			Payload: models.PartialContent{
				SessionID: sessionID, Chunk: fragment, TotalChunksSent: sent,
			},
		})
	})
}

func (s *SolveService) status(ctx context.Context, sessionID uuid.UUID, step int, name string) {
	s.publisher.Publish(ctx, sessionID, models.WSMessage{
		Type: "status_update",
		Payload: models.StatusUpdate{
			SessionID: sessionID, Step: step, StepName: name,
		},
	})
}
