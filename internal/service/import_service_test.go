package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizcraft_backend/internal/config"
	"quizcraft_backend/internal/model"
	"quizcraft_backend/internal/util"
)

func chatHandler(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func newImportService(t *testing.T, handler http.Handler) (*ImportService, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, Model: "test"})
	return NewImportService(ai), srv.Close
}

func TestParseImportedQuestions(t *testing.T) {
	content := "```json\n" + `[
		{"text": "What is 2+2?", "type": "multiple_choice", "options": ["3", "4"], "correctAnswer": "4"},
		{"text": "The sky is blue.", "type": "true_false", "correctAnswer": "True"},
		{"text": "Name the capital of France.", "type": "text", "options": ["ignored"], "correct_answer": "Paris"},
		{"text": "   ", "type": "text", "correctAnswer": "dropped"},
		{"text": "Match planets.", "type": "matching", "options": ["Red:Mars", "Blue:Earth"], "correctAnswer": "see options"}
	]` + "\n```"

	svc, done := newImportService(t, chatHandler(content))
	defer done()

	got, err := svc.Parse(context.Background(), "raw lecture notes")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(got))
	}

	if got[0].Type != model.MultipleChoice || got[0].CorrectAnswer != "4" {
		t.Errorf("unexpected first question: %+v", got[0])
	}
	if len(got[1].Options) != 2 || got[1].Options[0] != "True" || got[1].Options[1] != "False" {
		t.Errorf("true_false options not defaulted: %v", got[1].Options)
	}
	if got[2].Options != nil {
		t.Errorf("text question should not carry options, got %v", got[2].Options)
	}
	if got[2].CorrectAnswer != "Paris" {
		t.Errorf("snake_case correct_answer not honored: %q", got[2].CorrectAnswer)
	}
	if got[3].Type != model.Matching || len(got[3].Options) != 2 {
		t.Errorf("unexpected matching question: %+v", got[3])
	}
}

func TestParseWrappedObject(t *testing.T) {
	content := `{"questions": [{"text": "Q1", "type": "text", "correctAnswer": "a"}]}`
	svc, done := newImportService(t, chatHandler(content))
	defer done()

	got, err := svc.Parse(context.Background(), "raw")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Q1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParseBadSchema(t *testing.T) {
	cases := map[string]string{
		"not json":     "I cannot extract questions from this text.",
		"unknown type": `[{"text": "Q", "type": "essay", "correctAnswer": "a"}]`,
		"no options":   `[{"text": "Q", "type": "multiple_choice", "correctAnswer": "a"}]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			svc, done := newImportService(t, chatHandler(content))
			defer done()

			_, err := svc.Parse(context.Background(), "raw")
			if !errors.Is(err, util.ErrAIBadSchema) {
				t.Fatalf("expected ErrAIBadSchema, got %v", err)
			}
		})
	}
}

func TestParseRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})
	svc, done := newImportService(t, handler)
	defer done()

	_, err := svc.Parse(context.Background(), "raw")
	if !errors.Is(err, util.ErrAIRejected) {
		t.Fatalf("expected ErrAIRejected, got %v", err)
	}
}

func TestParseUnreachable(t *testing.T) {
	srv := httptest.NewServer(chatHandler("[]"))
	srv.Close() // 地址已失效

	ai := NewAIService(config.AIConfig{BaseURL: srv.URL, Model: "test"})
	svc := NewImportService(ai)

	_, err := svc.Parse(context.Background(), "raw")
	if !errors.Is(err, util.ErrAIUnreachable) {
		t.Fatalf("expected ErrAIUnreachable, got %v", err)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"[]", "[]"},
		{"```json\n[]\n```", "[]"},
		{"```\n[]\n```", "[]"},
		{"  ```json\n[1, 2]\n```  ", "[1, 2]"},
	}
	for _, c := range cases {
		if got := stripFences(c.in); got != c.want {
			t.Errorf("stripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
