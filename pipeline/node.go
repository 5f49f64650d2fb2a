package pipeline

import (
	"context"

	"github.com/rushteam/carrec/core"
)

// Kind 用于标记 Node 类型，方便观测与编排。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：加载候选池
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合条件的候选
	KindRank   Kind = "rank"   // 排序阶段：计算相似度并排序
	KindReRank Kind = "rerank" // 重排阶段：截断等
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
