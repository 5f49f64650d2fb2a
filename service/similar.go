package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/recall"
)

// CallOption 调整单次相似车辆请求。
type CallOption func(*core.RecommendContext)

// WithParams 设置请求级参数，filter.expr 中以 params.xxx 引用，例如
//
//	svc.SimilarCars(ctx, co, br, id, page, service.WithParams(map[string]any{"budget": 25000.0}))
func WithParams(params map[string]any) CallOption {
	return func(rctx *core.RecommendContext) {
		if len(params) == 0 {
			return
		}
		if rctx.Params == nil {
			rctx.Params = make(map[string]any, len(params))
		}
		for k, v := range params {
			rctx.Params[k] = v
		}
	}
}

// SimilarCars 返回门店内与 carID 最相似的车辆，按相似度从高到低。
//
// 门店范围与目标车辆并发解析：公司/门店/车辆不存在返回 NOT_FOUND，
// 归属不符返回 INVALID_INPUT。page.Offset 作用于候选池（组装向量之前），
// page.Limit 作用于排序结果。目标车辆本身不会出现在结果中。
// opts 提供请求级参数（见 WithParams）。
func (s *InventoryService) SimilarCars(ctx context.Context, companyID, branchID, carID int64, page Page, opts ...CallOption) ([]core.Car, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	page = s.normalize(page)

	var target *core.Car
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.validateScope(gctx, companyID, branchID)
	})
	g.Go(func() error {
		c, err := s.existingCar(gctx, carID, 0, 0)
		target = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := checkCarScope(target, branchID, companyID); err != nil {
		return nil, err
	}

	rctx := &core.RecommendContext{
		CompanyID: companyID,
		BranchID:  branchID,
		Target:    target,
		Offset:    page.Offset,
		Limit:     page.Limit,
	}
	for _, opt := range opts {
		opt(rctx)
	}
	p := s.similar.Prepend(&recall.Inventory{Store: s.store})
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("company_id", companyID).
			Int64("branch_id", branchID).
			Int64("car_id", carID).
			Msg("similar cars pipeline failed")
		return nil, err
	}

	cars := core.CarsFromItems(items)
	s.logger.Debug().
		Int64("car_id", carID).
		Int("offset", page.Offset).
		Int("limit", page.Limit).
		Int("results", len(cars)).
		Msg("similar cars")
	return cars, nil
}
