package reconcile

import (
	"reflect"
	"testing"

	"quizcraft_backend/internal/model"
)

const quizID = "quiz-1"

func persisted(id, text string, t model.QuestionType) model.Question {
	q := model.Question{Text: text, Type: t}
	q.ID = id
	return q
}

func fresh(text string, t model.QuestionType) model.Question {
	return model.Question{Text: text, Type: t}
}

func TestQuestionsDeletions(t *testing.T) {
	original := []model.Question{
		persisted("a", "A", model.MultipleChoice),
		persisted("b", "B", model.Text),
	}
	edited := []model.Question{
		persisted("a", "A changed", model.MultipleChoice),
		fresh("C", model.Text),
	}

	plan := Questions(quizID, original, edited)

	if !reflect.DeepEqual(plan.ToDelete, []string{"b"}) {
		t.Errorf("ToDelete = %v, want [b]", plan.ToDelete)
	}
	if len(plan.ToUpdate) != 1 || plan.ToUpdate[0].ID != "a" || plan.ToUpdate[0].Text != "A changed" {
		t.Errorf("ToUpdate = %+v, want the edited question a", plan.ToUpdate)
	}
	if len(plan.ToInsert) != 1 || plan.ToInsert[0].Text != "C" || plan.ToInsert[0].ID != "" {
		t.Errorf("ToInsert = %+v, want the new question C", plan.ToInsert)
	}
}

func TestQuestionsNeverPersistedAreNotDeletionCandidates(t *testing.T) {
	original := []model.Question{fresh("draft", model.Text)}
	plan := Questions(quizID, original, nil)
	if len(plan.ToDelete) != 0 {
		t.Errorf("ToDelete = %v, want empty", plan.ToDelete)
	}
}

func TestQuestionsEmptyTextDropped(t *testing.T) {
	edited := []model.Question{
		fresh("  ", model.Text),
		fresh("", model.MultipleChoice),
		fresh("kept", model.Text),
	}

	plan := Questions(quizID, nil, edited)

	if len(plan.ToInsert) != 1 || plan.ToInsert[0].Text != "kept" {
		t.Errorf("ToInsert = %+v, want only the non-empty question", plan.ToInsert)
	}
}

func TestQuestionsDedupNewEntriesOnly(t *testing.T) {
	t.Run("two new duplicates keep one", func(t *testing.T) {
		edited := []model.Question{
			fresh("What is Go?", model.Text),
			fresh("  What is Go?  ", model.Text),
		}
		plan := Questions(quizID, nil, edited)
		if len(plan.ToInsert) != 1 {
			t.Fatalf("ToInsert has %d entries, want 1", len(plan.ToInsert))
		}
	})

	t.Run("persisted duplicate survives", func(t *testing.T) {
		edited := []model.Question{
			fresh("What is Go?", model.Text),
			persisted("a", "What is Go?", model.Text),
		}
		plan := Questions(quizID, nil, edited)
		if len(plan.ToInsert) != 1 || len(plan.ToUpdate) != 1 {
			t.Fatalf("got insert=%d update=%d, want 1/1", len(plan.ToInsert), len(plan.ToUpdate))
		}
	})

	t.Run("same text different type is no duplicate", func(t *testing.T) {
		edited := []model.Question{
			fresh("What is Go?", model.Text),
			fresh("What is Go?", model.MultipleChoice),
		}
		plan := Questions(quizID, nil, edited)
		if len(plan.ToInsert) != 2 {
			t.Fatalf("ToInsert has %d entries, want 2", len(plan.ToInsert))
		}
	})
}

func TestQuestionsOrderAssignment(t *testing.T) {
	edited := []model.Question{
		persisted("a", "first", model.Text),
		fresh(" ", model.Text), // dropped
		fresh("second", model.Text),
		fresh("second", model.Text), // duplicate, dropped
		persisted("b", "third", model.Text),
	}

	plan := Questions(quizID, nil, edited)

	got := make(map[string]int)
	for _, q := range plan.ToUpdate {
		got[q.Text] = q.Order
	}
	for _, q := range plan.ToInsert {
		got[q.Text] = q.Order
	}

	want := map[string]int{"first": 0, "second": 1, "third": 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order assignment = %v, want %v", got, want)
	}
}

func TestQuestionsOptionsNormalization(t *testing.T) {
	edited := []model.Question{
		{Text: "choice", Type: model.MultipleChoice, Options: model.StringList{"A", "B"}},
		{Text: "free", Type: model.Text, Options: model.StringList{"stale", "junk"}},
	}

	plan := Questions(quizID, nil, edited)

	if plan.ToInsert[0].Options == nil {
		t.Error("multiple_choice options must be preserved")
	}
	if plan.ToInsert[1].Options != nil {
		t.Errorf("text options = %v, want nil", plan.ToInsert[1].Options)
	}
}

func TestQuestionsAssignsQuizID(t *testing.T) {
	plan := Questions(quizID, nil, []model.Question{fresh("q", model.Text)})
	if plan.ToInsert[0].QuizID != quizID {
		t.Errorf("QuizID = %q, want %q", plan.ToInsert[0].QuizID, quizID)
	}
}

func TestQuestionsDeterministic(t *testing.T) {
	original := []model.Question{
		persisted("a", "A", model.MultipleChoice),
		persisted("b", "B", model.Text),
	}
	edited := []model.Question{
		persisted("b", "B2", model.Text),
		fresh("C", model.Matching),
		fresh("C", model.Matching),
	}

	first := Questions(quizID, original, edited)
	second := Questions(quizID, original, edited)

	if !reflect.DeepEqual(first, second) {
		t.Error("reconciliation must be deterministic for identical inputs")
	}
}
