package filter

import (
	"context"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pkg/dsl"
)

// ExprFilter 用 CEL 表达式描述“保留”条件，表达式为 false 的车辆被过滤。
//
//	f, err := filter.NewExprFilter(`car.fuel_type == "Diesel" && car.price <= params.budget`)
type ExprFilter struct {
	prg *dsl.Program
}

// NewExprFilter 编译表达式，语法错误在构建时返回。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{prg: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	var params map[string]any
	if rctx != nil {
		params = rctx.Params
	}
	keep, err := f.prg.Match(item.Car, params)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
