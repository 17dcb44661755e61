package repository

import (
	"quizcraft_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) ListByQuiz(quizID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Order("`order` asc, created_at asc").Find(&qs).Error
	return qs, err
}

// BatchDelete 按 id 批量删除。不存在的 id 不报错，重试天然幂等。
func (r *QuestionRepository) BatchDelete(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Where("id IN ?", ids).Delete(&model.Question{}).Error
}

// BatchUpdate 批量覆盖既有题目的内容字段。
// 显式 Select 保证 options 为 NULL、order 为 0 这类零值也会写入。
func (r *QuestionRepository) BatchUpdate(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, q := range questions {
			err := tx.Model(&model.Question{}).
				Where("id = ?", q.ID).
				Select("quiz_id", "text", "type", "options", "correct_answer", "order").
				Updates(q).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// BatchInsert 批量插入新题目，id 由存储生成
func (r *QuestionRepository) BatchInsert(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Create(&questions).Error
}
