// Package dsl 用 CEL (Common Expression Language) 表达车辆筛选条件。
//
// 表达式语法（CEL 标准语法）：
//   - 字段：car.make == "Toyota" / car.price < 25000.0 / car.seats >= 5
//   - 逻辑：car.fuel_type == "Diesel" && car.year >= 2018
//   - 集合：car.color in ["Red", "Black"]
//   - 请求参数：car.price <= params.budget，params 来自 RecommendContext.Params（service.WithParams）
//
// 数值字段类型：price 为 double，year / kilometers / seats / id 为 int。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/carrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("car", cel.MapType(cel.StringType, cel.DynType)),
			cel.Variable("params", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的表达式，可并发复用。
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式，表达式必须返回 bool。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) && !ast.OutputType().IsExactType(cel.DynType) {
		return nil, fmt.Errorf("compile %q: expression must return bool, got %s", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Match 对一辆车求值。params 可为 nil。
func (p *Program) Match(car core.Car, params map[string]any) (bool, error) {
	if params == nil {
		params = map[string]any{}
	}
	out, _, err := p.prg.Eval(map[string]any{
		"car":    CarInput(car),
		"params": params,
	})
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", p.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval %q: expression must return bool, got %T", p.expr, out.Value())
	}
	return result, nil
}

// CarInput 把车辆转换为 CEL 输入，key 与 JSON 字段名一致。
func CarInput(c core.Car) map[string]any {
	return map[string]any{
		"id":           c.ID,
		"company_id":   c.CompanyID,
		"branch_id":    c.BranchID,
		"make":         c.Make,
		"model":        c.Model,
		"price":        c.Price,
		"year":         int64(c.Year),
		"kilometers":   int64(c.Kilometers),
		"fuel_type":    string(c.FuelType),
		"transmission": string(c.Transmission),
		"color":        c.Color,
		"seats":        int64(c.Seats),
	}
}
