package rerank

import (
	"context"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pipeline"
)

// TopNNode 在排序之后截取前 N 个车辆。
// 相似度排序已经按请求的 limit 截断；TopNNode 用于在配置里再设一个全局上限。
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.Inventory{Store: s},
//	        &rank.SimilarityNode{},
//	        &rerank.TopNNode{N: 20},
//	    },
//	}
type TopNNode struct {
	// N <= 0 时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
