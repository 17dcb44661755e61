package repository

import (
	"quizcraft_backend/internal/model"
	"quizcraft_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, "id = ?", id).Error
	return &quiz, err
}

func (r *QuizRepository) FindBySlug(slug string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, "slug = ?", slug).Error
	return &quiz, err
}

// FindByReference 兼容两种访问方式：UUID 形态的按主键查，其余按 slug 查
func (r *QuizRepository) FindByReference(ref string) (*model.Quiz, error) {
	if util.IsUUID(ref) {
		return r.FindByID(ref)
	}
	return r.FindBySlug(ref)
}

// Delete 删除测验并级联清理其题目和答题记录
func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}

type QuizListRow struct {
	model.Quiz
	QuestionCount int `json:"questionCount"`
	ResponseCount int `json:"responseCount"`
}

// ListAll 管理端测验列表，附带题目数和答题数，新建的在前
func (r *QuizRepository) ListAll() ([]QuizListRow, error) {
	var rows []QuizListRow
	err := r.DB.Table("quizzes t").
		Select("t.*, " +
			"(SELECT COUNT(*) FROM questions q WHERE q.quiz_id = t.id AND q.deleted_at IS NULL) as question_count, " +
			"(SELECT COUNT(*) FROM responses s WHERE s.quiz_id = t.id AND s.deleted_at IS NULL) as response_count").
		Where("t.deleted_at IS NULL").
		Order("t.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// ListActive 公开端可参加的测验列表，支持标题/描述模糊搜索
func (r *QuizRepository) ListActive(search string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	query := r.DB.Where("is_active = ?", true)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	err := query.Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}
