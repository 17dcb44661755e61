package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizcraft_backend/internal/model"
	"quizcraft_backend/internal/util"
)

// ImportService 把一段原始文本（讲义、旧试卷、随手记录的问答）
// 交给大模型解析成结构化题目，供编辑器采纳后再走正常保存流程。
// 解析结果不直接入库。
type ImportService struct {
	AI *AIService
}

func NewImportService(ai *AIService) *ImportService {
	return &ImportService{AI: ai}
}

const importSystemPrompt = "你是测验题目录入助手。用户会粘贴一段原始文本，" +
	"你需要从中提取测验题目，输出一个 JSON 数组，不要输出任何解释文字或 Markdown 代码块。\n" +
	"数组的每个元素形如：\n" +
	`{"text": "题干", "type": "题型", "options": ["选项"], "correctAnswer": "正确答案"}` + "\n" +
	"type 只能是以下五种之一：multiple_choice、multiple_answer、true_false、matching、text。\n" +
	"multiple_answer 的 correctAnswer 是逗号分隔的多个选项；\n" +
	"true_false 的 options 固定为 [\"True\", \"False\"]；\n" +
	"matching 的每个 option 形如 \"提示:答案\"，冒号前是提示、冒号后是配对的答案；\n" +
	"text 题不需要 options。\n" +
	"跳过重复的题目。原文没有标注答案时根据内容推断一个最合理的答案。\n" +
	"原文没有题目时输出空数组 []。"

// importedQuestion 兼容两种常见的字段命名，模型偶尔会换风格
type importedQuestion struct {
	Text           string             `json:"text"`
	Type           model.QuestionType `json:"type"`
	Options        model.StringList   `json:"options"`
	CorrectAnswer  string             `json:"correctAnswer"`
	CorrectAnswer2 string             `json:"correct_answer"`
}

func (q importedQuestion) answer() string {
	if q.CorrectAnswer != "" {
		return q.CorrectAnswer
	}
	return q.CorrectAnswer2
}

// Parse 调用大模型解析原始文本，返回编辑器可直接采纳的题目列表。
// 三类失败分别由 util.ErrAIUnreachable、util.ErrAIRejected、
// util.ErrAIBadSchema 标识。
func (s *ImportService) Parse(ctx context.Context, rawText string) ([]QuestionInput, error) {
	content, err := s.AI.Chat(ctx, importSystemPrompt, rawText)
	if err != nil {
		return nil, err
	}

	items, err := decodeQuestions(stripFences(content))
	if err != nil {
		return nil, err
	}

	out := make([]QuestionInput, 0, len(items))
	for i, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		if !model.ValidQuestionType(item.Type) {
			return nil, fmt.Errorf("%w: question %d has type %q", util.ErrAIBadSchema, i, item.Type)
		}

		input := QuestionInput{
			Text:          text,
			Type:          item.Type,
			CorrectAnswer: item.answer(),
		}
		switch item.Type {
		case model.TrueFalse:
			input.Options = item.Options
			if len(input.Options) == 0 {
				input.Options = append(model.StringList{}, model.DefaultTrueFalseOptions...)
			}
		case model.Text:
			// options 不携带
		default:
			if len(item.Options) == 0 {
				return nil, fmt.Errorf("%w: question %d (%s) has no options", util.ErrAIBadSchema, i, item.Type)
			}
			input.Options = item.Options
		}
		out = append(out, input)
	}
	return out, nil
}

// decodeQuestions 容忍两种返回形态：裸数组，或包了一层 {"questions": [...]}
func decodeQuestions(data string) ([]importedQuestion, error) {
	var items []importedQuestion
	if err := json.Unmarshal([]byte(data), &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Questions []importedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(data), &wrapped); err == nil && wrapped.Questions != nil {
		return wrapped.Questions, nil
	}

	return nil, fmt.Errorf("%w: response is not a question array", util.ErrAIBadSchema)
}

// stripFences 去掉模型偶尔加上的 Markdown 代码块围栏
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// 首行可能是语言标记（```json），整行丢弃
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
