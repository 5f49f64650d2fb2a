// Package builders 在 init 中注册内置 Node 的配置构建逻辑。
package builders

import (
	"fmt"

	"github.com/rushteam/carrec/config"
	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/filter"
	"github.com/rushteam/carrec/pipeline"
	"github.com/rushteam/carrec/pkg/conv"
	"github.com/rushteam/carrec/rank"
	"github.com/rushteam/carrec/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("filter.expr", BuildExprFilterNode)
	config.Register("filter.attribute", BuildAttributeFilterNode)
	config.Register("rank.similarity", BuildSimilarityNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

// BuildFilterNode 构建组合过滤节点：
//
//	type: filter
//	config:
//	  fail_open: false
//	  filters:
//	    - {type: blacklist, car_ids: [3, 7]}
//	    - {type: expr, expr: 'car.seats >= 5'}
//	    - {type: attribute, make: Toyota, price_max: 30000}
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for i, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("filter #%d: invalid config", i)
		}
		f, err := buildFilter(filterMap)
		if err != nil {
			return nil, fmt.Errorf("filter #%d: %w", i, err)
		}
		filters = append(filters, f)
	}
	return &filter.FilterNode{
		Filters:  filters,
		FailOpen: conv.ConfigGet(cfg, "fail_open", false),
	}, nil
}

func buildFilter(cfg map[string]any) (filter.Filter, error) {
	switch t := conv.ConfigGet(cfg, "type", ""); t {
	case "blacklist":
		return filter.NewBlacklistFilter(conv.SliceAnyToInt64(cfg["car_ids"])), nil
	case "expr":
		return filter.NewExprFilter(conv.ConfigGet(cfg, "expr", ""))
	case "attribute":
		q, err := parseCarQuery(cfg)
		if err != nil {
			return nil, err
		}
		return &filter.AttributeFilter{Query: q}, nil
	default:
		return nil, fmt.Errorf("unknown filter type: %q", t)
	}
}

// BuildExprFilterNode 构建单个 CEL 表达式过滤节点：config: {expr: '...'}
func BuildExprFilterNode(cfg map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("expr not found")
	}
	f, err := filter.NewExprFilter(expr)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

// BuildAttributeFilterNode 构建属性过滤节点，config 的 key 与 CarQuery 的 JSON 字段一致。
func BuildAttributeFilterNode(cfg map[string]any) (pipeline.Node, error) {
	q, err := parseCarQuery(cfg)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{&filter.AttributeFilter{Query: q}}}, nil
}

func BuildSimilarityNode(map[string]any) (pipeline.Node, error) {
	return &rank.SimilarityNode{}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

// BuildDiversityNode 构建多样性重排节点：config: {field: make, max_per_group: 2}
func BuildDiversityNode(cfg map[string]any) (pipeline.Node, error) {
	field := conv.ConfigGet(cfg, "field", "make")
	if _, err := rerank.GroupValue(core.Car{}, field); err != nil {
		return nil, err
	}
	return &rerank.Diversity{
		Field:       field,
		MaxPerGroup: int(conv.ConfigGetInt64(cfg, "max_per_group", 1)),
	}, nil
}

func parseCarQuery(cfg map[string]any) (filter.CarQuery, error) {
	q := filter.CarQuery{
		Make:     conv.ConfigGet(cfg, "make", ""),
		Model:    conv.ConfigGet(cfg, "model", ""),
		YearMin:  int(conv.ConfigGetInt64(cfg, "year_min", 0)),
		YearMax:  int(conv.ConfigGetInt64(cfg, "year_max", 0)),
		PriceMin: conv.ConfigGetFloat64(cfg, "price_min", 0),
		PriceMax: conv.ConfigGetFloat64(cfg, "price_max", 0),
		Color:    conv.ConfigGet(cfg, "color", ""),
		SeatsMin: int(conv.ConfigGetInt64(cfg, "seats_min", 0)),
		SeatsMax: int(conv.ConfigGetInt64(cfg, "seats_max", 0)),
	}
	if s := conv.ConfigGet(cfg, "fuel_type", ""); s != "" {
		ft, err := core.ParseFuelType(s)
		if err != nil {
			return q, err
		}
		q.FuelType = ft
	}
	if s := conv.ConfigGet(cfg, "transmission", ""); s != "" {
		tr, err := core.ParseTransmission(s)
		if err != nil {
			return q, err
		}
		q.Transmission = tr
	}
	return q, nil
}
