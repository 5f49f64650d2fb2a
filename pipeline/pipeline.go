package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/carrec/core"
)

// Pipeline 把“相似车辆”请求拆成可组合的 Node 链：
// Recall（候选池）-> Filter -> Rank（相似度）-> ReRank（截断）。
type Pipeline struct {
	Name  string
	Nodes []Node
}

// Run 依次执行各 Node，任一 Node 出错即中止并返回错误。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}

// Append 返回在末尾追加 nodes 后的新 Pipeline，原 Pipeline 不变。
func (p *Pipeline) Append(nodes ...Node) *Pipeline {
	merged := make([]Node, 0, len(p.Nodes)+len(nodes))
	merged = append(merged, p.Nodes...)
	merged = append(merged, nodes...)
	return &Pipeline{Name: p.Name, Nodes: merged}
}

// Prepend 返回在开头插入 nodes 后的新 Pipeline，原 Pipeline 不变。
func (p *Pipeline) Prepend(nodes ...Node) *Pipeline {
	merged := make([]Node, 0, len(p.Nodes)+len(nodes))
	merged = append(merged, nodes...)
	merged = append(merged, p.Nodes...)
	return &Pipeline{Name: p.Name, Nodes: merged}
}
