package filter

import (
	"context"

	"github.com/rushteam/carrec/core"
)

// BlacklistFilter 过滤掉指定 ID 的车辆，例如已售出或已预订的车辆。
type BlacklistFilter struct {
	carIDs map[int64]struct{}
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(carIDs []int64) *BlacklistFilter {
	set := make(map[int64]struct{}, len(carIDs))
	for _, id := range carIDs {
		set[id] = struct{}{}
	}
	return &BlacklistFilter{carIDs: set}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	_, hit := f.carIDs[item.ID]
	return hit, nil
}
