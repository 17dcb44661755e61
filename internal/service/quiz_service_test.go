package service

import (
	"context"
	"errors"
	"testing"

	"quizcraft_backend/internal/model"
	"quizcraft_backend/internal/repository"
	"quizcraft_backend/internal/util"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Quiz{}, &model.Question{}, &model.Response{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newQuizService(t *testing.T) (*QuizService, *ResponseService) {
	t.Helper()
	db := newTestDB(t)
	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	return NewQuizService(quizRepo, questionRepo, nil),
		NewResponseService(quizRepo, questionRepo, responseRepo)
}

func strptr(s string) *string { return &s }

func TestCreateQuizWithQuestions(t *testing.T) {
	svc, _ := newQuizService(t)
	ctx := context.Background()

	detail, err := svc.CreateQuiz(ctx, &SaveQuizRequest{
		Title:       "Astronomy basics",
		Description: "Planets and stars",
		Slug:        strptr("astronomy"),
		Questions: []QuestionInput{
			{Text: "Largest planet?", Type: model.MultipleChoice, Options: model.StringList{"Mars", "Jupiter"}, CorrectAnswer: "Jupiter"},
			{Text: "The sun is a star.", Type: model.TrueFalse, Options: model.StringList{"True", "False"}, CorrectAnswer: "True"},
			{Text: "Name one moon of Mars.", Type: model.Text, Options: model.StringList{"leftover"}, CorrectAnswer: "Phobos"},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if detail.Quiz.ID == "" {
		t.Fatal("quiz id not assigned")
	}
	if len(detail.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(detail.Questions))
	}
	for i, q := range detail.Questions {
		if q.Order != i {
			t.Errorf("question %d has order %d", i, q.Order)
		}
		if q.QuizID != detail.Quiz.ID {
			t.Errorf("question %d not bound to quiz", i)
		}
	}
	if detail.Questions[2].Options != nil {
		t.Errorf("text question kept options: %v", detail.Questions[2].Options)
	}
}

func TestSaveQuizReconciles(t *testing.T) {
	svc, _ := newQuizService(t)
	ctx := context.Background()

	detail, err := svc.CreateQuiz(ctx, &SaveQuizRequest{
		Title: "Editable",
		Questions: []QuestionInput{
			{Text: "Keep me", Type: model.Text, CorrectAnswer: "a"},
			{Text: "Delete me", Type: model.Text, CorrectAnswer: "b"},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	keep := detail.Questions[0]
	removed := detail.Questions[1]

	// 一轮编辑：改一道旧题、删一道、加两道（其中一道重复粘贴）、留一条空白草稿
	saved, err := svc.SaveQuiz(ctx, detail.Quiz.ID, &SaveQuizRequest{
		Title: "Editable v2",
		Questions: []QuestionInput{
			{ID: keep.ID, Text: "Keep me (edited)", Type: model.Text, CorrectAnswer: "a2"},
			{Text: "Brand new", Type: model.Text, CorrectAnswer: "c"},
			{Text: "Brand new", Type: model.Text, CorrectAnswer: "c"},
			{Text: "   ", Type: model.Text, CorrectAnswer: "draft"},
		},
	})
	if err != nil {
		t.Fatalf("SaveQuiz: %v", err)
	}

	if saved.Quiz.Title != "Editable v2" {
		t.Errorf("title not updated: %q", saved.Quiz.Title)
	}
	if len(saved.Questions) != 2 {
		t.Fatalf("expected 2 surviving questions, got %d", len(saved.Questions))
	}
	if saved.Questions[0].ID != keep.ID || saved.Questions[0].Text != "Keep me (edited)" {
		t.Errorf("edited question not updated in place: %+v", saved.Questions[0])
	}
	if saved.Questions[1].Text != "Brand new" || saved.Questions[1].Order != 1 {
		t.Errorf("inserted question wrong: %+v", saved.Questions[1])
	}
	for _, q := range saved.Questions {
		if q.ID == removed.ID {
			t.Error("removed question still present")
		}
	}
}

func TestSaveQuizNotFound(t *testing.T) {
	svc, _ := newQuizService(t)
	_, err := svc.SaveQuiz(context.Background(), model.GenerateUUID(), &SaveQuizRequest{Title: "x"})
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestSaveQuizRejectsUnknownType(t *testing.T) {
	svc, _ := newQuizService(t)
	_, err := svc.CreateQuiz(context.Background(), &SaveQuizRequest{
		Title:     "x",
		Questions: []QuestionInput{{Text: "Q", Type: "essay"}},
	})
	if !errors.Is(err, util.ErrInvalidQuestionType) {
		t.Fatalf("expected ErrInvalidQuestionType, got %v", err)
	}
}

func TestGetPublicDetailHidesAnswers(t *testing.T) {
	svc, _ := newQuizService(t)
	ctx := context.Background()

	detail, err := svc.CreateQuiz(ctx, &SaveQuizRequest{
		Title: "Public",
		Slug:  strptr("public-quiz"),
		Questions: []QuestionInput{
			{Text: "Pick one", Type: model.MultipleChoice, Options: model.StringList{"a", "b"}, CorrectAnswer: "a"},
			{Text: "Match colors", Type: model.Matching, Options: model.StringList{"Sky:Blue", "Grass:Green"}, CorrectAnswer: "pairs"},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	// slug 和 UUID 两种访问方式等价
	for _, ref := range []string{"public-quiz", detail.Quiz.ID} {
		pub, err := svc.GetPublicDetail(ref)
		if err != nil {
			t.Fatalf("GetPublicDetail(%q): %v", ref, err)
		}
		if len(pub.Questions) != 2 {
			t.Fatalf("expected 2 questions, got %d", len(pub.Questions))
		}

		choice := pub.Questions[0]
		if len(choice.Options) != 2 {
			t.Errorf("choice options missing: %v", choice.Options)
		}

		matching := pub.Questions[1]
		if matching.Options != nil {
			t.Errorf("matching options leak pairings: %v", matching.Options)
		}
		if len(matching.Prompts) != 2 || matching.Prompts[0] != "Sky" || matching.Prompts[1] != "Grass" {
			t.Errorf("unexpected prompts: %v", matching.Prompts)
		}
		if len(matching.Answers) != 2 || matching.Answers[0] != "Blue" || matching.Answers[1] != "Green" {
			t.Errorf("answers should be sorted: %v", matching.Answers)
		}
	}
}

func TestGetPublicDetailInactive(t *testing.T) {
	svc, _ := newQuizService(t)
	ctx := context.Background()

	inactive := false
	detail, err := svc.CreateQuiz(ctx, &SaveQuizRequest{Title: "Hidden", IsActive: &inactive})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	if _, err := svc.GetPublicDetail(detail.Quiz.ID); !errors.Is(err, util.ErrQuizInactive) {
		t.Fatalf("expected ErrQuizInactive, got %v", err)
	}
}

func TestDeleteQuizCascades(t *testing.T) {
	svc, respSvc := newQuizService(t)
	ctx := context.Background()

	detail, err := svc.CreateQuiz(ctx, &SaveQuizRequest{
		Title:     "Doomed",
		Questions: []QuestionInput{{Text: "Q", Type: model.Text, CorrectAnswer: "a"}},
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	result, err := respSvc.Submit(detail.Quiz.ID, &SubmitRequest{
		Name:    "Ada",
		Answers: model.AnswerMap{detail.Questions[0].ID: {Text: "a"}},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := svc.DeleteQuiz(ctx, detail.Quiz.ID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}

	if _, err := svc.GetDetail(detail.Quiz.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("quiz still readable after delete: %v", err)
	}
	if _, err := respSvc.Detail(result.ResponseID); !errors.Is(err, util.ErrResponseNotFound) {
		t.Errorf("response survived quiz deletion: %v", err)
	}
}

func TestSubmitGradesAndRecords(t *testing.T) {
	svc, respSvc := newQuizService(t)
	ctx := context.Background()

	detail, err := svc.CreateQuiz(ctx, &SaveQuizRequest{
		Title: "Graded",
		Questions: []QuestionInput{
			{Text: "2+2?", Type: model.MultipleChoice, Options: model.StringList{"3", "4"}, CorrectAnswer: "4"},
			{Text: "Pick fruits", Type: model.MultipleAnswer, Options: model.StringList{"apple", "rock", "pear"}, CorrectAnswer: "apple, pear"},
			{Text: "Match", Type: model.Matching, Options: model.StringList{"Sky:Blue"}, CorrectAnswer: "pairs"},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	qs := detail.Questions

	result, err := respSvc.Submit(detail.Quiz.ID, &SubmitRequest{
		Name: "  Grace  ",
		Answers: model.AnswerMap{
			qs[0].ID: {Text: "4"},
			qs[1].ID: {Text: "pear,apple"},
			qs[2].ID: {Matching: map[string]string{"Sky": "Green"}},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.Score != 2 || result.Total != 3 {
		t.Fatalf("score = %d/%d, want 2/3", result.Score, result.Total)
	}
	if !result.Results[0].Correct || !result.Results[1].Correct || result.Results[2].Correct {
		t.Errorf("unexpected per-question results: %+v", result.Results)
	}

	stored, err := respSvc.Detail(result.ResponseID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if stored.Response.RespondentName != "Grace" {
		t.Errorf("name not trimmed: %q", stored.Response.RespondentName)
	}
	if stored.Response.Score != 2 {
		t.Errorf("stored score = %d, want 2", stored.Response.Score)
	}
	if stored.QuizTitle != "Graded" {
		t.Errorf("quiz title missing: %q", stored.QuizTitle)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, respSvc := newQuizService(t)
	ctx := context.Background()

	inactive := false
	hidden, err := svc.CreateQuiz(ctx, &SaveQuizRequest{Title: "Hidden", IsActive: &inactive})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	if _, err := respSvc.Submit(hidden.Quiz.ID, &SubmitRequest{Name: "   "}); !errors.Is(err, util.ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
	if _, err := respSvc.Submit(hidden.Quiz.ID, &SubmitRequest{Name: "Bob"}); !errors.Is(err, util.ErrQuizInactive) {
		t.Errorf("expected ErrQuizInactive, got %v", err)
	}
	if _, err := respSvc.Submit("no-such-quiz", &SubmitRequest{Name: "Bob"}); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestListActiveSearch(t *testing.T) {
	svc, _ := newQuizService(t)
	ctx := context.Background()

	inactive := false
	mustCreate := func(req *SaveQuizRequest) {
		if _, err := svc.CreateQuiz(ctx, req); err != nil {
			t.Fatalf("CreateQuiz: %v", err)
		}
	}
	mustCreate(&SaveQuizRequest{Title: "Biology midterm"})
	mustCreate(&SaveQuizRequest{Title: "History", Description: "biology of empires"})
	mustCreate(&SaveQuizRequest{Title: "Hidden biology", IsActive: &inactive})

	all, err := svc.ListActive(ctx, "")
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 active quizzes, got %d", len(all))
	}

	found, err := svc.ListActive(ctx, "biology")
	if err != nil {
		t.Fatalf("ListActive search: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("search should match title and description, got %d rows", len(found))
	}
}
