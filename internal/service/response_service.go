package service

import (
	"errors"
	"strings"
	"time"

	"quizcraft_backend/internal/grading"
	"quizcraft_backend/internal/model"
	"quizcraft_backend/internal/repository"
	"quizcraft_backend/internal/util"
	"quizcraft_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ResponseService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	ResponseRepo *repository.ResponseRepository
}

func NewResponseService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, responseRepo *repository.ResponseRepository) *ResponseService {
	return &ResponseService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		ResponseRepo: responseRepo,
	}
}

// SubmitRequest 一次答题提交。answers 的键是题目 ID，
// 未作答的题目可以缺席。
type SubmitRequest struct {
	Name    string          `json:"name" binding:"required"`
	Answers model.AnswerMap `json:"answers"`
}

// QuestionResult 单题判分结论，提交后立即回传给答题者
type QuestionResult struct {
	QuestionID    string            `json:"question_id"`
	Correct       bool              `json:"correct"`
	CorrectAnswer string            `json:"correct_answer"`
	Answer        model.AnswerValue `json:"answer"`
}

type SubmitResult struct {
	ResponseID string           `json:"response_id"`
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Results    []QuestionResult `json:"results"`
}

// Submit 评分并落库一条答题记录。评分只在这一刻发生一次，
// 之后题目即使被编辑，历史得分也不会变。
func (s *ResponseService) Submit(ref string, req *SubmitRequest) (*SubmitResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, util.ErrNameRequired
	}

	quiz, err := s.QuizRepo.FindByReference(ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrQuizInactive
	}

	questions, err := s.QuestionRepo.ListByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}

	answers := req.Answers
	if answers == nil {
		answers = model.AnswerMap{}
	}

	results := make([]QuestionResult, 0, len(questions))
	score := 0
	for _, q := range questions {
		ans := answers[q.ID]
		correct := grading.IsCorrect(q, ans)
		if correct {
			score++
		}
		results = append(results, QuestionResult{
			QuestionID:    q.ID,
			Correct:       correct,
			CorrectAnswer: q.CorrectAnswer,
			Answer:        ans,
		})
	}

	response := &model.Response{
		QuizID:         quiz.ID,
		RespondentName: name,
		Score:          score,
		Answers:        answers,
		SubmittedAt:    time.Now(),
	}
	if err := s.ResponseRepo.Create(response); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(quiz.ID).Inc()

	return &SubmitResult{
		ResponseID: response.ID,
		Score:      score,
		Total:      len(questions),
		Results:    results,
	}, nil
}

// List 管理端答题记录列表，支持按测验过滤和按姓名搜索
func (s *ResponseService) List(quizID, name string, page, limit int) ([]repository.ResponseListRow, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ResponseRepo.List(quizID, name, page, limit)
}

// ReviewItem 复查视图中的一行：题目、当时的作答、据当前判分规则的结论
type ReviewItem struct {
	Question model.Question    `json:"question"`
	Answer   model.AnswerValue `json:"answer"`
	Correct  bool              `json:"correct"`
}

type ResponseDetail struct {
	Response  model.Response `json:"response"`
	QuizTitle string         `json:"quiz_title"`
	Total     int            `json:"total"`
	Items     []ReviewItem   `json:"items"`
}

// Detail 管理端复查单条答题。逐题结论用当前题目集现算，
// 与落库的总分可能有出入（题目在提交后被编辑过时），
// 落库分数始终是权威的历史记录。
func (s *ResponseService) Detail(id string) (*ResponseDetail, error) {
	response, err := s.ResponseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResponseNotFound
	} else if err != nil {
		return nil, err
	}

	quiz, err := s.QuizRepo.FindByID(response.QuizID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	questions, listErr := s.QuestionRepo.ListByQuiz(response.QuizID)
	if listErr != nil {
		return nil, listErr
	}

	items := make([]ReviewItem, 0, len(questions))
	for _, q := range questions {
		ans := response.Answers[q.ID]
		items = append(items, ReviewItem{
			Question: q,
			Answer:   ans,
			Correct:  grading.IsCorrect(q, ans),
		})
	}

	detail := &ResponseDetail{
		Response: *response,
		Total:    len(questions),
		Items:    items,
	}
	if quiz != nil && quiz.ID != "" {
		detail.QuizTitle = quiz.Title
	}
	return detail, nil
}
