package solver

import (
	"errors"
	"strings"
	"testing"

	"google.golang.org/api/iterator"

	"mathexpert-backend/internal/models"
)

type sliceSource struct {
	chunks []*models.ResponseChunk
	err    error // returned after the chunks are exhausted, instead of iterator.Done
	pos    int
}

func (s *sliceSource) Next() (*models.ResponseChunk, error) {
	if s.pos >= len(s.chunks) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, iterator.Done
	}
	c := s.chunks[s.pos]
	s.pos++
	return c, nil
}

func textSource(texts ...string) *sliceSource {
	src := &sliceSource{}
	for _, t := range texts {
		src.chunks = append(src.chunks, &models.ResponseChunk{Text: t})
	}
	return src
}

type panicSource struct{}

func (panicSource) Next() (*models.ResponseChunk, error) { panic("boom") }

func TestAggregateStream_SplitInvariance(t *testing.T) {
	a := AggregateStream(textSource("ab", "c"), nil)
	b := AggregateStream(textSource("a", "bc"), nil)
	c := AggregateStream(textSource("abc"), nil)

	if a.Text != b.Text || b.Text != c.Text {
		t.Fatalf("expected identical output, got %q / %q / %q", a.Text, b.Text, c.Text)
	}
	if !strings.HasPrefix(a.Text, "abc") {
		t.Errorf("expected prefix %q, got %q", "abc", a.Text)
	}
}

func TestAggregateStream_PartsInOrder(t *testing.T) {
	src := &sliceSource{chunks: []*models.ResponseChunk{
		{Parts: []string{"STEP 1: ", "", "intro\n"}},
		nil,
		{Text: "FINAL ANSWER: 4", Parts: []string{"ignored"}},
	}}

	got := AggregateStream(src, nil)
	if got.Text != "STEP 1: intro\nFINAL ANSWER: 4" {
		t.Errorf("unexpected text %q", got.Text)
	}
	if !got.Complete || got.Failed {
		t.Errorf("expected complete, non-failed solution: %+v", got)
	}
}

func TestAggregateStream_ObserverSeesFragments(t *testing.T) {
	var seen []string
	AggregateStream(textSource("a", "", "b"), func(f string) { seen = append(seen, f) })

	if strings.Join(seen, "|") != "a|b" {
		t.Errorf("expected fragments a|b, got %v", seen)
	}
}

func TestAggregateStream_EmptyYieldsSentinel(t *testing.T) {
	tests := []struct {
		name string
		src  *sliceSource
	}{
		{"no chunks", textSource()},
		{"empty chunks", textSource("", "")},
		{"whitespace chunks", textSource("  ", "\n\t")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AggregateStream(tc.src, nil)
			if got.Text != NoContentMessage {
				t.Errorf("expected no-content sentinel, got %q", got.Text)
			}
			if !got.Failed || !strings.HasPrefix(got.Text, ErrorMarker) {
				t.Errorf("sentinel must be marked failed and carry the error marker")
			}
		})
	}
}

func TestAggregateStream_SourceErrorBecomesSentinel(t *testing.T) {
	src := textSource("partial ")
	src.err = errors.New("connection reset")

	got := AggregateStream(src, nil)
	if got.Text != "❌ Error: connection reset" {
		t.Errorf("unexpected text %q", got.Text)
	}
	if !got.Failed {
		t.Error("expected failed solution")
	}
}

func TestAggregateStream_PanicIsContained(t *testing.T) {
	got := AggregateStream(panicSource{}, nil)
	if !got.Failed || got.Text != "❌ Error: boom" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestAggregateStream_CompletenessWarning(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		complete bool
	}{
		{"final answer upper", "STEP 1\nFINAL ANSWER: 12", true},
		{"final answer mixed case", "so the Final Answer is 12", true},
		{"real-world", "Real-world use: bridges", true},
		{"urdu final answer", "حتمی جواب: ۱۲", true},
		{"urdu application", "حقیقی دنیا میں اطلاق", true},
		{"missing markers", "STEP 1: intro\nSolution: x = 4", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AggregateStream(textSource(tc.text), nil)
			if got.Complete != tc.complete {
				t.Errorf("expected complete=%v, got %v", tc.complete, got.Complete)
			}
			warnings := strings.Count(got.Text, IncompleteWarning)
			if tc.complete && warnings != 0 {
				t.Errorf("complete text must not carry a warning: %q", got.Text)
			}
			if !tc.complete && warnings != 1 {
				t.Errorf("expected exactly one warning, got %d", warnings)
			}
		})
	}
}

func TestAggregateStream_WarningNotDoubled(t *testing.T) {
	first := AggregateStream(textSource("x = 4"), nil)
	second := AggregateStream(textSource(first.Text), nil)

	if second.Text != first.Text {
		t.Errorf("re-aggregating warned text changed it:\n%q\n%q", first.Text, second.Text)
	}
	if strings.Count(second.Text, IncompleteWarning) != 1 {
		t.Errorf("expected a single warning")
	}
}

func TestAggregateResponse(t *testing.T) {
	got := AggregateResponse(&models.ResponseChunk{Text: "FINAL ANSWER: 4"}, nil)
	if got.Text != "FINAL ANSWER: 4" || !got.Complete {
		t.Errorf("expected verbatim complete text, got %+v", got)
	}

	got = AggregateResponse(&models.ResponseChunk{}, nil)
	if got.Text != EmptyResponseMessage || !got.Failed {
		t.Errorf("expected empty-response sentinel, got %+v", got)
	}

	got = AggregateResponse(nil, errors.New("googleapi: Error 500"))
	if got.Text != "❌ Error: googleapi: Error 500" || !got.Failed {
		t.Errorf("expected error sentinel, got %+v", got)
	}
}
