package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pipeline"
)

// FilterNode 组合多个过滤器，任何一个过滤器返回 true，该车辆就会被移除。
// 保留的候选维持原有顺序。
type FilterNode struct {
	Filters []Filter

	// FailOpen 为 true 时过滤器出错视为保留，否则中止整个请求
	FailOpen bool
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		drop, err := n.shouldFilter(ctx, rctx, item)
		if err != nil {
			return nil, err
		}
		if !drop {
			out = append(out, item)
		}
	}
	return out, nil
}

func (n *FilterNode) shouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	for _, f := range n.Filters {
		ok, err := f.ShouldFilter(ctx, rctx, item)
		if err != nil {
			if n.FailOpen {
				continue
			}
			return false, fmt.Errorf("%s: %w", f.Name(), err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
