package utils

import "strconv"

// Label 是推荐链路中可解释、可追踪的标记。
// Value 与 Source 的语义由节点自定义；这里只提供统一的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / filter / rank / rerank
}

// 链路中内置节点写入的 label key。
const (
	LabelRecallSource = "recall_source"
	LabelRankModel    = "rank_model"
	LabelRankPosition = "rank_position"
)

// MergeLabel 合并同名 Label：Value 以 '|' 累积，Source 以 ',' 累积。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}

// PositionLabel 生成排序位次 label（从 1 开始）。
func PositionLabel(pos int, source string) Label {
	return Label{Value: strconv.Itoa(pos), Source: source}
}
