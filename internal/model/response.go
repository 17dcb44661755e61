package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AnswerValue 单题的作答内容。除 matching 题外均为字符串；
// matching 题为 prompt 到所选答案的映射。JSON 编码保持原始形态
// （字符串或对象），与存量数据兼容。
type AnswerValue struct {
	Text     string
	Matching map[string]string
}

// IsMatching 作答是否为 matching 形态
func (a AnswerValue) IsMatching() bool {
	return a.Matching != nil
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.Matching != nil {
		return json.Marshal(a.Matching)
	}
	return json.Marshal(a.Text)
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Text = s
		a.Matching = nil
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("answer must be a string or a string map: %w", err)
	}
	a.Matching = m
	a.Text = ""
	return nil
}

// AnswerMap 题目ID到作答内容的映射，整体以 JSON 持久化
type AnswerMap map[string]AnswerValue

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(AnswerMap{})
	}
	return json.Marshal(m)
}

func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for AnswerMap: %T", value)
	}
	if len(data) == 0 {
		*m = AnswerMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// 答题记录。提交时评分一次后不可变，没有更新和删除路径。
// swagger:model Response
type Response struct {
	UUIDBase
	QuizID         string    `gorm:"index;type:varchar(36);not null" json:"quiz_id"`
	RespondentName string    `gorm:"size:100;not null" json:"respondent_name"`
	Score          int       `gorm:"not null" json:"score"`
	Answers        AnswerMap `gorm:"type:json" json:"answers"`
	SubmittedAt    time.Time `gorm:"index" json:"submitted_at"`
}

func (Response) TableName() string {
	return "responses"
}
