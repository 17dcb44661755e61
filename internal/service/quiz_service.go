package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"quizcraft_backend/internal/grading"
	"quizcraft_backend/internal/model"
	"quizcraft_backend/internal/reconcile"
	"quizcraft_backend/internal/repository"
	"quizcraft_backend/internal/util"
	"quizcraft_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	Redis        *redis.Client
}

func NewQuizService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		Redis:        rdb,
	}
}

const activeQuizzesCacheKey = "quizzes:active"

// QuestionInput 编辑器提交的单条题目。id 为空表示本次编辑新增的题目。
type QuestionInput struct {
	ID            string             `json:"id"`
	Text          string             `json:"text"`
	Type          model.QuestionType `json:"type" binding:"required"`
	Options       model.StringList   `json:"options"`
	CorrectAnswer string             `json:"correct_answer"`
}

// SaveQuizRequest 保存测验的完整载荷，题目列表整体替换
type SaveQuizRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Slug        *string         `json:"slug"`
	IsActive    *bool           `json:"is_active"`
	Questions   []QuestionInput `json:"questions"`
}

// QuizDetail 管理端测验详情，题目携带正确答案
type QuizDetail struct {
	Quiz      model.Quiz       `json:"quiz"`
	Questions []model.Question `json:"questions"`
}

// PublicQuestion 答题端看到的题目，不含正确答案。
// matching 题不回传原始 options（其中编码了配对关系），
// 改为分别给出提示列表和打乱后的候选答案列表。
type PublicQuestion struct {
	ID      string             `json:"id"`
	Text    string             `json:"text"`
	Type    model.QuestionType `json:"type"`
	Options model.StringList   `json:"options,omitempty"`
	Prompts model.StringList   `json:"prompts,omitempty"`
	Answers model.StringList   `json:"answers,omitempty"`
	Order   int                `json:"order"`
}

type PublicQuizDetail struct {
	Quiz      model.Quiz       `json:"quiz"`
	Questions []PublicQuestion `json:"questions"`
}

// ListQuizzes 管理端列表，附带每个测验的题目数和答题数
func (s *QuizService) ListQuizzes() ([]repository.QuizListRow, error) {
	return s.QuizRepo.ListAll()
}

// ListActive 答题端可参加的测验。无搜索词时走 Redis 缓存，
// 搜索请求直接查库。缓存不可用时退化为直查，不影响可用性。
func (s *QuizService) ListActive(ctx context.Context, search string) ([]model.Quiz, error) {
	if search == "" && s.Redis != nil {
		val, err := s.Redis.Get(ctx, activeQuizzesCacheKey).Result()
		if err == nil {
			var quizzes []model.Quiz
			if err := json.Unmarshal([]byte(val), &quizzes); err == nil {
				return quizzes, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("active quizzes cache read failed", zap.Error(err))
		}
	}

	quizzes, err := s.QuizRepo.ListActive(search)
	if err != nil {
		return nil, err
	}

	if search == "" && s.Redis != nil {
		if data, err := json.Marshal(quizzes); err == nil {
			if err := s.Redis.Set(ctx, activeQuizzesCacheKey, data, time.Minute).Err(); err != nil {
				logger.Log.Warn("active quizzes cache write failed", zap.Error(err))
			}
		}
	}
	return quizzes, nil
}

func (s *QuizService) invalidateActiveCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, activeQuizzesCacheKey).Err(); err != nil {
		logger.Log.Warn("active quizzes cache invalidation failed", zap.Error(err))
	}
}

// GetDetail 管理端详情，题目按展示顺序排列
func (s *QuizService) GetDetail(id string) (*QuizDetail, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}
	return &QuizDetail{Quiz: *quiz, Questions: questions}, nil
}

// GetPublicDetail 答题端详情。未激活的测验对外不可见，
// 所有题目剥离正确答案后返回。
func (s *QuizService) GetPublicDetail(ref string) (*PublicQuizDetail, error) {
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

	public := make([]PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, toPublicQuestion(q))
	}
	return &PublicQuizDetail{Quiz: *quiz, Questions: public}, nil
}

func toPublicQuestion(q model.Question) PublicQuestion {
	p := PublicQuestion{
		ID:    q.ID,
		Text:  q.Text,
		Type:  q.Type,
		Order: q.Order,
	}
	if q.Type == model.Matching {
		for _, opt := range q.Options {
			prompt, answer := grading.SplitPair(opt)
			p.Prompts = append(p.Prompts, prompt)
			p.Answers = append(p.Answers, answer)
		}
		// 候选答案排序后返回，避免顺序暴露配对关系
		sort.Strings(p.Answers)
	} else {
		p.Options = q.Options
	}
	return p
}

// CreateQuiz 新建测验并写入题目
func (s *QuizService) CreateQuiz(ctx context.Context, req *SaveQuizRequest) (*QuizDetail, error) {
	quiz := &model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Slug:        normalizeSlug(req.Slug),
		IsActive:    true,
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return s.saveQuestions(ctx, quiz, nil, req.Questions)
}

// SaveQuiz 更新测验元信息并全量保存题目列表
func (s *QuizService) SaveQuiz(ctx context.Context, id string, req *SaveQuizRequest) (*QuizDetail, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.Slug = normalizeSlug(req.Slug)
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}

	original, err := s.QuestionRepo.ListByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}
	return s.saveQuestions(ctx, quiz, original, req.Questions)
}

// saveQuestions 以首次加载的题目集为基线计算差分，
// 按 删除→更新→插入 的顺序分批提交，任一批失败立即中止。
// 批次之间不构成事务，失败后由再次保存收敛到目标状态。
func (s *QuizService) saveQuestions(ctx context.Context, quiz *model.Quiz, original []model.Question, inputs []QuestionInput) (*QuizDetail, error) {
	edited := make([]model.Question, 0, len(inputs))
	for _, in := range inputs {
		if !model.ValidQuestionType(in.Type) {
			return nil, util.ErrInvalidQuestionType
		}
		edited = append(edited, model.Question{
			UUIDBase:      model.UUIDBase{ID: in.ID},
			Text:          in.Text,
			Type:          in.Type,
			Options:       in.Options,
			CorrectAnswer: in.CorrectAnswer,
		})
	}

	plan := reconcile.Questions(quiz.ID, original, edited)

	if err := s.QuestionRepo.BatchDelete(plan.ToDelete); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.BatchUpdate(plan.ToUpdate); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.BatchInsert(plan.ToInsert); err != nil {
		return nil, err
	}

	s.invalidateActiveCache(ctx)

	questions, err := s.QuestionRepo.ListByQuiz(quiz.ID)
	if err != nil {
		return nil, err
	}
	return &QuizDetail{Quiz: *quiz, Questions: questions}, nil
}

// DeleteQuiz 删除测验及其题目和答题记录
func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	if _, err := s.QuizRepo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuizNotFound
	} else if err != nil {
		return err
	}
	if err := s.QuizRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateActiveCache(ctx)
	return nil
}

// normalizeSlug 空白 slug 归一为 NULL，避免唯一索引把多个空串视为冲突
func normalizeSlug(slug *string) *string {
	if slug == nil || *slug == "" {
		return nil
	}
	return slug
}
