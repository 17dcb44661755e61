package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	MultipleAnswer QuestionType = "multiple_answer"
	TrueFalse      QuestionType = "true_false"
	Matching       QuestionType = "matching"
	Text           QuestionType = "text"
)

// ValidQuestionType 校验题型是否为支持的五种之一
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case MultipleChoice, MultipleAnswer, TrueFalse, Matching, Text:
		return true
	}
	return false
}

// HasOptions 判断题型是否携带选项列表（text 题型的 options 持久化为 NULL）
func HasOptions(t QuestionType) bool {
	switch t {
	case MultipleChoice, MultipleAnswer, TrueFalse, Matching:
		return true
	}
	return false
}

// 判断题的默认选项标签
var DefaultTrueFalseOptions = StringList{"True", "False"}

// StringList 以 JSON 数组形式持久化的有序字符串列表。
// nil 值写库为 NULL，用于 text 题型不携带选项的场景。
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// 题目。options 和 correct_answer 的含义依 type 而定：
//   - multiple_choice: options 为候选项，correct_answer 为其中一项
//   - multiple_answer: correct_answer 为逗号分隔的多个候选项
//   - true_false:      options 为两个标签，correct_answer 为其中之一
//   - matching:        options 每项形如 "Prompt:Answer"，correct_answer 仅为摘要文本
//   - text:            options 为空，correct_answer 为期望的自由文本
//
// swagger:model Question
type Question struct {
	UUIDBase
	QuizID        string       `gorm:"index;type:varchar(36);not null" json:"quiz_id"`
	Text          string       `gorm:"type:text;not null" json:"text"`
	Type          QuestionType `gorm:"size:50;not null" json:"type"`
	Options       StringList   `gorm:"type:json" json:"options"`
	CorrectAnswer string       `gorm:"type:text" json:"correct_answer"`
	Order         int          `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}
