package service

import (
	"context"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/filter"
	"github.com/rushteam/carrec/pipeline"
	"github.com/rushteam/carrec/pkg/conv"
	"github.com/rushteam/carrec/recall"
)

// SearchCars 按属性条件搜索门店车辆，结果按 ID 升序，分页作用于过滤之后。
// 零值条件不做限制。
func (s *InventoryService) SearchCars(ctx context.Context, companyID, branchID int64, q filter.CarQuery, page Page) ([]core.Car, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	page = s.normalize(page)

	if err := s.validateScope(ctx, companyID, branchID); err != nil {
		return nil, err
	}
	if page.Limit == 0 {
		return []core.Car{}, nil
	}

	p := &pipeline.Pipeline{
		Name: "search_cars",
		Nodes: []pipeline.Node{
			&recall.Inventory{Store: s.store},
			&filter.FilterNode{Filters: []filter.Filter{&filter.AttributeFilter{Query: q}}},
		},
	}
	items, err := p.Run(ctx, &core.RecommendContext{CompanyID: companyID, BranchID: branchID}, nil)
	if err != nil {
		return nil, err
	}
	cars := conv.Paginate(core.CarsFromItems(items), page.Offset, page.Limit)
	s.logger.Debug().
		Int64("company_id", companyID).
		Int64("branch_id", branchID).
		Int("results", len(cars)).
		Msg("search cars")
	return cars, nil
}

// LuckyCar 从门店库存中随机挑选一辆车；门店没有车辆时返回 NOT_FOUND。
func (s *InventoryService) LuckyCar(ctx context.Context, companyID, branchID int64) (*core.Car, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.validateScope(ctx, companyID, branchID); err != nil {
		return nil, err
	}
	n, err := s.store.CountCars(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, notFound("car")
	}
	cars, err := s.store.ListCars(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}
	// 计数与列表之间库存可能变化
	if len(cars) == 0 {
		return nil, notFound("car")
	}
	off := s.intN(n)
	if off >= len(cars) {
		off = len(cars) - 1
	}
	c := cars[off]
	return &c, nil
}
