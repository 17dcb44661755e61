package repository

import (
	"quizcraft_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// Create 答题记录只写入一次，之后不可变
func (r *ResponseRepository) Create(response *model.Response) error {
	return r.DB.Create(response).Error
}

func (r *ResponseRepository) FindByID(id string) (*model.Response, error) {
	var response model.Response
	err := r.DB.First(&response, "id = ?", id).Error
	return &response, err
}

type ResponseListRow struct {
	model.Response
	QuizTitle string `json:"quizTitle"`
}

// List 管理端答题记录列表，可按测验过滤、按答题人姓名模糊搜索
func (r *ResponseRepository) List(quizID, name string, page, limit int) ([]ResponseListRow, int64, error) {
	query := r.DB.Table("responses s").
		Joins("JOIN quizzes t ON s.quiz_id = t.id").
		Where("s.deleted_at IS NULL")

	if quizID != "" {
		query = query.Where("s.quiz_id = ?", quizID)
	}
	if name != "" {
		query = query.Where("s.respondent_name LIKE ?", "%"+name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ResponseListRow
	offset := (page - 1) * limit
	err := query.Select("s.*, t.title as quiz_title").
		Order("s.submitted_at desc").Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}
