package model

// 测验。问卷的容器，slug 为可选的人类可读访问路径。
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Slug        *string `gorm:"size:100;uniqueIndex" json:"slug"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
