// Package carrec 是车辆经销商库存的后端模块：公司、门店、车辆、用户与用户行为，
// 以及基于内容的“相似车辆”推荐。
//
// 设计要点：
// - Pipeline-first: 相似车辆通过 Node 串联（Recall → Filter → Rank → ReRank）
// - 无状态排序: 每次请求基于当次候选池重新构建 TF-IDF 词表与向量，结果确定
// - 存储可替换: core.InventoryStore 由 store.MemoryStore / store.RedisStore 实现
package carrec

import (
	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pipeline"
	"github.com/rushteam/carrec/similarity"
)

// 轻量 facade：便于直接 import "carrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Car = core.Car
type Scored = similarity.Scored

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)

// Rank 按与 target 的相似度对 candidates 排序，见 similarity.Rank。
func Rank(target *Car, candidates []Car, offset, limit int) ([]Car, error) {
	return similarity.Rank(target, candidates, offset, limit)
}
