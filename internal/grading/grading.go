// Package grading 实现各题型的判分规则。纯计算，无任何存储或会话依赖，
// 提交评分与事后复查共用同一套实现，保证两处结论一致。
package grading

import (
	"sort"
	"strings"

	"quizcraft_backend/internal/model"
)

// IsCorrect 判断单题作答是否正确。零值 AnswerValue 视为未作答。
//
// 判分规则按题型：
//   - multiple_choice / true_false / text: 与 correct_answer 逐字节相等，
//     不做去空格和大小写折叠
//   - multiple_answer: 双方按逗号切分、去首尾空格、丢弃空项后作无序多重集比较，
//     未选任何项不得分
//   - matching: 从 options 重建 prompt→answer 期望映射，期望映射非空且每个
//     prompt 的作答与期望完全一致才得分，多余的 prompt 忽略
func IsCorrect(q model.Question, ans model.AnswerValue) bool {
	switch q.Type {
	case model.MultipleChoice, model.TrueFalse, model.Text:
		return ans.Text == q.CorrectAnswer
	case model.MultipleAnswer:
		return multisetEqual(splitSelections(ans.Text), splitSelections(q.CorrectAnswer))
	case model.Matching:
		return matchingCorrect(q.Options, ans.Matching)
	}
	return false
}

// Score 统计答对的题目数。answers 中缺失的题目视为未作答。
func Score(questions []model.Question, answers model.AnswerMap) int {
	score := 0
	for _, q := range questions {
		if IsCorrect(q, answers[q.ID]) {
			score++
		}
	}
	return score
}

// splitSelections 按逗号切分多选作答，去首尾空格并丢弃空项
func splitSelections(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func multisetEqual(got, want []string) bool {
	if len(got) == 0 || len(got) != len(want) {
		return false
	}
	a := append([]string(nil), got...)
	b := append([]string(nil), want...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SplitPair 将 "Prompt:Answer" 形式的选项拆成提示和期望答案。
// 没有冒号时整串作为提示、期望答案为空，保证拆分总有定义。
func SplitPair(option string) (prompt, answer string) {
	if i := strings.Index(option, ":"); i >= 0 {
		return option[:i], option[i+1:]
	}
	return option, ""
}

func matchingCorrect(options model.StringList, submitted map[string]string) bool {
	if len(options) == 0 {
		return false
	}
	for _, opt := range options {
		prompt, want := SplitPair(opt)
		got, ok := submitted[prompt]
		if !ok || got != want {
			return false
		}
	}
	return true
}
