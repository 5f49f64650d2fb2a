package recall

import (
	"context"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pipeline"
	"github.com/rushteam/carrec/pkg/utils"
)

// Inventory 是一个 Recall Node：从库存存储加载 company/branch 范围内的全部车辆作为候选池。
// 候选池按 ID 升序，顺序决定排序阶段的同分次序和 offset 语义。
// 范围校验由调用方完成，这里只按 rctx 中的 CompanyID / BranchID 取数。
type Inventory struct {
	Store core.InventoryStore
}

func (n *Inventory) Name() string        { return "recall.inventory" }
func (n *Inventory) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Inventory) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if n.Store == nil || rctx == nil {
		return nil, nil
	}
	cars, err := n.Store.ListCars(ctx, rctx.CompanyID, rctx.BranchID)
	if err != nil {
		return nil, err
	}
	items := core.ItemsFromCars(cars)
	for _, it := range items {
		it.PutLabel(utils.LabelRecallSource, utils.Label{Value: "inventory", Source: "recall"})
	}
	return items, nil
}

// Static 是一个 Recall Node：直接返回给定车辆，便于在不接存储的场景下复用 Pipeline。
type Static struct {
	Cars []core.Car
}

func (n *Static) Name() string        { return "recall.static" }
func (n *Static) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Static) Process(
	_ context.Context,
	_ *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	items := core.ItemsFromCars(n.Cars)
	for _, it := range items {
		it.PutLabel(utils.LabelRecallSource, utils.Label{Value: "static", Source: "recall"})
	}
	return items, nil
}
