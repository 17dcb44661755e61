// Package reconcile 将编辑器中的题目列表与首次加载的原始列表做差分，
// 得到应当对存储执行的删除、更新、插入三组操作。纯数据变换，本身不会失败；
// 三组操作由调用方按 删除→更新→插入 的顺序提交。
package reconcile

import (
	"strings"

	"quizcraft_backend/internal/model"
)

// Plan 一次保存需要执行的三组存储操作
type Plan struct {
	ToDelete []string
	ToUpdate []model.Question
	ToInsert []model.Question
}

// Questions 计算原始题目集到编辑后题目集的差分。
//
//   - 原始集中存在、编辑集中已不见其 id 的题目进入 ToDelete（从未持久化
//     过的 id 为空的条目不参与删除判定）
//   - 去掉 text 修剪后为空的条目，它们是编辑到一半被放弃的草稿
//   - 仅对全新条目（无 id）按 修剪后text+type 去重：同键已出现过的新条目
//     被跳过；携带 id 的条目即使键重复也保留，编辑两道旧题成相同文本是允许的
//   - 幸存序列按当前展示顺序重新编号为 0..N-1 作为 order
//   - text 题型的 options 置为 nil，其余四种题型原样保留
//   - 携带 id 的条目进入 ToUpdate，其余进入 ToInsert
func Questions(quizID string, original, edited []model.Question) Plan {
	var plan Plan

	surviving := make(map[string]bool)
	for _, q := range edited {
		if q.ID != "" {
			surviving[q.ID] = true
		}
	}
	for _, q := range original {
		if q.ID != "" && !surviving[q.ID] {
			plan.ToDelete = append(plan.ToDelete, q.ID)
		}
	}

	seen := make(map[string]bool)
	order := 0
	for _, q := range edited {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			continue
		}

		key := text + "::" + string(q.Type)
		if seen[key] && q.ID == "" {
			// 重复粘贴或导入产生的全新条目，丢弃
			continue
		}
		seen[key] = true

		item := model.Question{
			QuizID:        quizID,
			Text:          q.Text,
			Type:          q.Type,
			CorrectAnswer: q.CorrectAnswer,
			Order:         order,
		}
		if model.HasOptions(q.Type) {
			item.Options = q.Options
		}
		order++

		if q.ID != "" {
			item.ID = q.ID
			plan.ToUpdate = append(plan.ToUpdate, item)
		} else {
			plan.ToInsert = append(plan.ToInsert, item)
		}
	}

	return plan
}
