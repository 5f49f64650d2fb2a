package rank

import (
	"context"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pipeline"
	"github.com/rushteam/carrec/pkg/utils"
	"github.com/rushteam/carrec/similarity"
)

// SimilarityNode 对候选池按与 rctx.Target 的内容相似度（TF-IDF + 余弦）排序。
// offset / limit 取自 rctx，语义与 similarity.RankScored 一致：
// offset 作用于候选池，limit 作用于排序结果。
//
// rctx 或 rctx.Target 为空时返回 similarity.ErrNoTarget。
type SimilarityNode struct{}

func (n *SimilarityNode) Name() string        { return "rank.similarity" }
func (n *SimilarityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SimilarityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil || rctx.Target == nil {
		return nil, similarity.ErrNoTarget
	}

	// 去掉 nil，保证下标与车辆一一对应
	pool := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			pool = append(pool, it)
		}
	}

	scored, err := similarity.RankScored(rctx.Target, core.CarsFromItems(pool), rctx.Offset, rctx.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(scored))
	for pos, s := range scored {
		it := pool[s.Index]
		it.Score = s.Score
		it.PutLabel(utils.LabelRankModel, utils.Label{Value: "tfidf_cosine", Source: "rank"})
		it.PutLabel(utils.LabelRankPosition, utils.PositionLabel(pos+1, "rank"))
		out = append(out, it)
	}
	return out, nil
}
